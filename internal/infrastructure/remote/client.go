package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain"
	"github.com/jhoicas/ecobazaar-storefront/internal/domain/repository"
	"github.com/jhoicas/ecobazaar-storefront/pkg/config"
	"github.com/jhoicas/ecobazaar-storefront/pkg/logger"
)

var _ repository.RemoteStore = (*Client)(nil)

// HeaderRequestID cabecera de correlación enviada en cada petición.
const HeaderRequestID = "X-Request-ID"

// Client implementación HTTP del puerto RemoteStore sobre el cliente de Fiber (fasthttp).
// No guarda estado de sesión: cada llamada recibe el userID explícitamente.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fiber.Client
	log     *logger.Logger
}

// NewClient construye el cliente contra cfg.BaseURL (incluye /api).
func NewClient(cfg config.RemoteConfig, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		http: &fiber.Client{
			UserAgent:   "ecobazaar-storefront",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
		log: log.Component("remote"),
	}
}

// call describe una petición al servidor remoto.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
}

// do ejecuta la petición y decodifica la respuesta 2xx en out (si no es nil).
// Los errores se traducen a la taxonomía de dominio (ver classify).
func (c *Client) do(ctx context.Context, rq call, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %v", rq.op, domain.ErrNetwork, err)
	}

	target := c.baseURL + rq.path
	if len(rq.query) > 0 {
		target += "?" + rq.query.Encode()
	}

	var a *fiber.Agent
	switch rq.method {
	case fiber.MethodGet:
		a = c.http.Get(target)
	case fiber.MethodPost:
		a = c.http.Post(target)
	case fiber.MethodPut:
		a = c.http.Put(target)
	case fiber.MethodDelete:
		a = c.http.Delete(target)
	default:
		return fmt.Errorf("%s: método no soportado %s", rq.op, rq.method)
	}

	reqID := uuid.NewString()
	a.Set(HeaderRequestID, reqID)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if rq.body != nil {
		a.JSON(rq.body)
	}
	a.Timeout(c.timeoutFor(ctx))
	if err := a.Parse(); err != nil {
		return fmt.Errorf("%s: %w: %v", rq.op, domain.ErrNetwork, err)
	}

	start := time.Now()
	code, raw, errs := a.Bytes()
	elapsed := time.Since(start)
	if len(errs) > 0 {
		c.log.Warn().Str("op", rq.op).Str("request_id", reqID).Err(errs[0]).Dur("elapsed", elapsed).Msg("petición remota fallida")
		return fmt.Errorf("%s: %w: %v", rq.op, domain.ErrNetwork, errs[0])
	}
	body := append([]byte(nil), raw...)

	c.log.Debug().Str("op", rq.op).Str("request_id", reqID).Int("status", code).Dur("elapsed", elapsed).Msg("petición remota")

	if code < 200 || code >= 300 {
		return classify(rq.op, code, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.RemoteError{Op: rq.op, Status: code, Message: "respuesta ilegible: " + err.Error(), Kind: domain.ErrRemoteFailure}
	}
	return nil
}

// timeoutFor usa el deadline del contexto si es más corto que el timeout configurado.
func (c *Client) timeoutFor(ctx context.Context) time.Duration {
	d := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}

// classify mapea el status HTTP al error de dominio, conservando el mensaje del servidor.
func classify(op string, status int, body []byte) error {
	kind := domain.ErrRemoteFailure
	switch status {
	case fiber.StatusUnauthorized:
		kind = domain.ErrAuthentication
	case fiber.StatusForbidden:
		kind = domain.ErrAuthorization
	case fiber.StatusNotFound:
		kind = domain.ErrNotFound
	}
	return &domain.RemoteError{Op: op, Status: status, Message: serverMessage(body), Kind: kind}
}

// serverMessage extrae el texto de error de los formatos que usa el servidor:
// {"error": ...}, {"message": ...} o {"errorCode": ..., "message": ...}.
func serverMessage(body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return strings.TrimSpace(string(body))
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func pathf(format string, ids ...int64) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
