package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// Version is reported to MCP clients in the initialize handshake.
const Version = "0.1.0"

// Server lets an assistant drive the translation workflow. Its tools read a
// fragment (get_conteudo_trecho), hand out the next fragments awaiting a
// video (get_trecho_para_traduzir) and record a finished video
// (registra_video). Resources expose the registered sites and the text of
// each fragment under the sinaliza:// scheme.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the sinaliza tools and resources over the given
// services. Every port must be set.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "sinaliza",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves one client over stdin/stdout until ctx is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled. All sessions share the same tools and services.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Registrations in flight finish before the listener closes.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("serving MCP on http://%s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
