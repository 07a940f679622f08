package handlers

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/vit0-9/ip-reverse-app/models"
	"github.com/vit0-9/ip-reverse-app/pkg/utils"
)

// ReflectMethods are the methods answered by the root and catch-all routes.
var ReflectMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// AllowHeader lists every method the service answers, for OPTIONS replies.
// HEAD and OPTIONS are implied by the routes, as in most web frameworks.
const AllowHeader = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

const unknownUserAgent = "Unknown"

// ReflectorHandlers echo the caller's apparent address back, reversed.
type ReflectorHandlers struct {
	resolver *utils.ClientIPResolver
	geo      *utils.GeoLocator
	logger   *log.Logger
	reverse  func(string) utils.ReverseResult
}

// NewReflectorHandlers wires the handlers. geo may be nil.
func NewReflectorHandlers(logger *log.Logger, geo *utils.GeoLocator) *ReflectorHandlers {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ReflectorHandlers{
		resolver: utils.NewClientIPResolver(logger),
		geo:      geo,
		logger:   logger,
		reverse:  utils.ReverseIPv4,
	}
}

// RootHandler godoc
// @Summary      Reflect the caller's IP
// @Description  Resolves the client IP from proxy headers or the peer address and returns it with its segments reversed.
// @Tags         Reflector
// @Produce      json
// @Success      200 {object} models.ReflectResponse
// @Router       / [get]
func (h *ReflectorHandlers) RootHandler(c *gin.Context) {
	resp := h.reflect(c, "/")
	h.logger.Info("Request handled", h.summary(resp)...)
	c.JSON(http.StatusOK, resp)
}

// CatchAllHandler godoc
// @Summary      Reflect the caller's IP on any path
// @Description  Same as the root route but echoes the requested path.
// @Tags         Reflector
// @Produce      json
// @Success      200 {object} models.ReflectResponse
// @Failure      405 {object} models.APIErrorResponse
// @Router       /{path} [get]
func (h *ReflectorHandlers) CatchAllHandler(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		OptionsHandler(c)
		return
	}
	if !isReflectMethod(c.Request.Method) {
		c.JSON(http.StatusMethodNotAllowed, models.APIErrorResponse{Error: "method not allowed"})
		return
	}

	resp := h.reflect(c, c.Request.URL.Path)
	h.logger.Info("Request handled", append([]interface{}{"path", resp.Path}, h.summary(resp)...)...)
	c.JSON(http.StatusOK, resp)
}

func (h *ReflectorHandlers) reflect(c *gin.Context, path string) models.ReflectResponse {
	clientIP := h.resolver.Resolve(c.Request.Header, utils.PeerAddress(c.Request.RemoteAddr))

	reversed := h.reverse(clientIP.IP)
	if reversed.Kind == utils.InternalError {
		h.logger.Error("Error reversing IP", "ip", clientIP.IP, "err", reversed.Err)
	}

	userAgent := unknownUserAgent
	if values := c.Request.Header.Values("User-Agent"); len(values) > 0 {
		userAgent = values[0]
	}

	return models.ReflectResponse{
		OriginalIP: clientIP.IP,
		ReversedIP: reversed.String(),
		Method:     c.Request.Method,
		Path:       path,
		UserAgent:  userAgent,
	}
}

// summary builds the key/value pairs of the per-request log line.
func (h *ReflectorHandlers) summary(resp models.ReflectResponse) []interface{} {
	kv := []interface{}{"ip", resp.OriginalIP, "reversed", resp.ReversedIP}
	if h.geo.Enabled() {
		info := h.geo.Lookup(resp.OriginalIP)
		if info.Error != "" {
			h.logger.Debug("GeoIP lookup failed", "ip", resp.OriginalIP, "err", info.Error)
		}
		kv = append(kv, info.Fields()...)
	}
	return kv
}

// OptionsHandler answers OPTIONS on any path with the Allow header and an
// empty body.
func OptionsHandler(c *gin.Context) {
	c.Header("Allow", AllowHeader)
	c.Status(http.StatusOK)
}

func isReflectMethod(method string) bool {
	if method == http.MethodHead {
		return true
	}
	for _, m := range ReflectMethods {
		if m == method {
			return true
		}
	}
	return false
}
