package router

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/techmaster-vietnam/kidsenglish/authz"
)

// RouteMetadata lưu thông tin route được khai báo trong code
type RouteMetadata struct {
	Method      string
	Path        string // Path tương đối, dùng khi add vào fiber router
	FullPath    string // Path đầy đủ kèm prefix, ":param" đổi thành "*"
	Handler     fiber.Handler
	Requirement authz.Requirement // Requirement hiệu lực sau khi áp dụng group
	Description string
}

type routeKey struct {
	method string
	path   string
}

// RouteRegistry giữ các route đã khai báo để tra cứu requirement theo method + path
type RouteRegistry struct {
	mu     sync.RWMutex
	routes []*RouteMetadata
	// exact chứa route không có param, wildcard gom theo method
	exact    map[routeKey]*RouteMetadata
	wildcard map[string][]*RouteMetadata
}

// NewRouteRegistry tạo mới RouteRegistry
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{
		exact:    make(map[routeKey]*RouteMetadata),
		wildcard: make(map[string][]*RouteMetadata),
	}
}

// Register thêm route vào registry. Route đăng ký trước được ưu tiên khi tra cứu.
func (rr *RouteRegistry) Register(route *RouteMetadata) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.routes = append(rr.routes, route)

	if strings.Contains(route.FullPath, "*") {
		rr.wildcard[route.Method] = append(rr.wildcard[route.Method], route)
		return
	}
	key := routeKey{method: route.Method, path: route.FullPath}
	if _, exists := rr.exact[key]; !exists {
		rr.exact[key] = route
	}
}

// GetAllRoutes trả về tất cả routes theo thứ tự đăng ký
func (rr *RouteRegistry) GetAllRoutes() []*RouteMetadata {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	routes := make([]*RouteMetadata, len(rr.routes))
	copy(routes, rr.routes)
	return routes
}

// FindRoute tìm route khớp với method và path thực tế (ví dụ "/api/roles/12").
// Method không phân biệt hoa thường, "/" ở cuối path bị bỏ qua. Trả về nil khi không có.
func (rr *RouteRegistry) FindRoute(method, path string) *RouteMetadata {
	method = strings.ToUpper(method)
	path = normalizePath(path)

	rr.mu.RLock()
	defer rr.mu.RUnlock()

	if route, ok := rr.exact[routeKey{method: method, path: path}]; ok {
		return route
	}
	for _, route := range rr.wildcard[method] {
		if matchPath(route.FullPath, path) {
			return route
		}
	}
	return nil
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// matchPath so pattern với path theo từng segment, "*" khớp đúng một segment khác rỗng
func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, part := range patternParts {
		if part == "*" {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}
