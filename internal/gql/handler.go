package gql

import (
	"bytes"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/parser"
	"github.com/botobag/artemis/graphql/token"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/arikankainen/consequat-server/internal/metrics"
	"github.com/arikankainen/consequat-server/internal/models"
	"github.com/arikankainen/consequat-server/internal/service"
)

// CurrentUserKey is the fiber locals key under which the auth middleware
// stores the resolved user.
const CurrentUserKey = "currentUser"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler serves GraphQL over POST. Responses are always 200 with a standard
// {data, errors} body; only an unreadable request yields 400.
type Handler struct {
	schema *graphql.Schema
	svc    *service.Services
	log    *zap.SugaredLogger
}

func NewHandler(schema *graphql.Schema, svc *service.Services, log *zap.SugaredLogger) *Handler {
	return &Handler{schema: schema, svc: svc, log: log}
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type errorsBody struct {
	Errors []errorEntry `json:"errors"`
}

type errorEntry struct {
	Message string `json:"message"`
}

func (h *Handler) Handle(c *fiber.Ctx) error {
	var req request
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorsBody{
			Errors: []errorEntry{{Message: "invalid request body"}},
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorsBody{
			Errors: []errorEntry{{Message: "no query provided"}},
		})
	}

	document, err := parser.Parse(token.NewSource(&token.SourceConfig{
		Body: token.SourceBody([]byte(req.Query)),
		Name: "GraphQL request",
	}), parser.ParseOptions{})
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(errorsBody{
			Errors: []errorEntry{{Message: err.Error()}},
		})
	}

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:        *h.schema,
		Document:      document,
		OperationName: req.OperationName,
	})
	if errs.HaveOccurred() {
		return h.writeResult(c, executor.ExecutionResult{Errors: errs})
	}

	user, _ := c.Locals(CurrentUserKey).(*models.User)

	// No Runner given, so Execute blocks until the operation completes.
	// Mutations run their root fields serially either way.
	result := <-operation.Execute(c.Context(), executor.ExecuteParams{
		AppContext:     &RequestContext{User: user, Svc: h.svc},
		VariableValues: req.Variables,
	})

	outcome := "ok"
	if result.Errors.HaveOccurred() {
		outcome = "error"
	}
	metrics.OperationsTotal.WithLabelValues(string(operation.Type()), outcome).Inc()

	return h.writeResult(c, result)
}

func (h *Handler) writeResult(c *fiber.Ctx, result executor.ExecutionResult) error {
	var buf bytes.Buffer
	if err := result.MarshalJSONTo(&buf); err != nil {
		h.log.Errorw("marshal graphql result", "err", err)
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(buf.Bytes())
}
