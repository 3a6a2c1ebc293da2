package logger

import "go.uber.org/zap"

// New builds a sugared zap logger. Development mode gets the human-readable
// console encoder, everything else the production JSON encoder.
func New(dev bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
