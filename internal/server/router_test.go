package server

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/garelabs/gare-backend/internal/data/repos/testutil"
	"github.com/garelabs/gare-backend/internal/http/handlers"
	"github.com/garelabs/gare-backend/internal/http/middleware"
)

func routeTable(t *testing.T) gin.RoutesInfo {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(t)
	router := NewRouter(RouterConfig{
		Log:                 log,
		AuthMiddleware:      middleware.NewAuthMiddleware(log, nil),
		HealthHandler:       handlers.NewHealthHandler(),
		AuthHandler:         handlers.NewAuthHandler(nil),
		UserHandler:         handlers.NewUserHandler(nil),
		PersonHandler:       handlers.NewPersonHandler(nil, nil),
		OrganizationHandler: handlers.NewOrganizationHandler(nil, nil),
		RelationshipHandler: handlers.NewRelationshipHandler(nil, nil),
	})
	return router.Routes()
}

func findRoute(routes gin.RoutesInfo, method, path string) (gin.RouteInfo, bool) {
	for _, route := range routes {
		if route.Method == method && route.Path == path {
			return route, true
		}
	}
	return gin.RouteInfo{}, false
}

// The per-person analysis path returns linkage suggestions, not a
// network expansion; the BFS lives only under /relacionamentos.
func TestRouterPersonAnalysisServesSuggestions(t *testing.T) {
	routes := routeTable(t)

	route, ok := findRoute(routes, "POST", "/api/pessoas-fisicas/:id/analisar-relacionamentos")
	if !ok {
		t.Fatalf("route POST /api/pessoas-fisicas/:id/analisar-relacionamentos not registered")
	}
	if !strings.Contains(route.Handler, "PersonHandler).Suggestions") {
		t.Fatalf("analisar-relacionamentos bound to %s, want PersonHandler.Suggestions", route.Handler)
	}

	route, ok = findRoute(routes, "POST", "/api/relacionamentos/analisar-rede")
	if !ok {
		t.Fatalf("route POST /api/relacionamentos/analisar-rede not registered")
	}
	if !strings.Contains(route.Handler, "RelationshipHandler).AnalyzeNetwork") {
		t.Fatalf("analisar-rede bound to %s, want RelationshipHandler.AnalyzeNetwork", route.Handler)
	}
}

func TestRouterCoreRoutesRegistered(t *testing.T) {
	routes := routeTable(t)

	wanted := []struct {
		method string
		path   string
	}{
		{"GET", "/healthcheck"},
		{"POST", "/api/auth/register"},
		{"POST", "/api/auth/login"},
		{"GET", "/api/pessoas-fisicas"},
		{"GET", "/api/pessoas-fisicas/validate-goa"},
		{"GET", "/api/pessoas-fisicas/validate-name"},
		{"GET", "/api/pessoas-fisicas/:id/sugestoes"},
		{"POST", "/api/pessoas-juridicas/:id/socios/importar"},
		{"GET", "/api/relacionamentos/por-pessoa"},
		{"PATCH", "/api/usuarios/:id/aprovacao"},
	}
	for _, w := range wanted {
		if _, ok := findRoute(routes, w.method, w.path); !ok {
			t.Fatalf("route %s %s not registered", w.method, w.path)
		}
	}
}
