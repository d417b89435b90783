// Package docs serves the API documentation bundles for every backend
// service from one place.
package docs

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>API Documentation</title></head>
<body>
<h1>API Documentation</h1>
<ul>
{{range .}}<li><a href="/api-docs/{{.}}">{{.}}</a></li>
{{end}}</ul>
</body>
</html>`))

var viewerTmpl = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.}} API</title></head>
<body>
<h1>{{.}} API</h1>
<p>Raw description: <a href="/api-docs/{{.}}/spec.json">spec.json</a></p>
</body>
</html>`))

// Server mounts one documentation endpoint per description bundle found
// in its directory.
type Server struct {
	engine   *gin.Engine
	services []string
}

// New scans dir for *.json bundles and builds the routes. A missing or
// empty directory is not an error; the index just comes up empty.
func New(dir string) (*Server, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("scan docs dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		s.services = append(s.services, name)

		file := filepath.Join(dir, e.Name())
		engine.GET("/api-docs/"+name, func(c *gin.Context) {
			c.Status(http.StatusOK)
			c.Header("Content-Type", "text/html; charset=utf-8")
			_ = viewerTmpl.Execute(c.Writer, name)
		})
		engine.GET("/api-docs/"+name+"/spec.json", func(c *gin.Context) {
			c.File(file)
		})
		logrus.Infof("docs for %s available at /api-docs/%s", name, name)
	}
	sort.Strings(s.services)

	engine.GET("/api-docs/", func(c *gin.Context) {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/html; charset=utf-8")
		_ = indexTmpl.Execute(c.Writer, s.services)
	})

	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Service is healthy")
	})

	return s, nil
}

// Services returns the mounted bundle names, sorted.
func (s *Server) Services() []string { return s.services }

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Run(port string) error {
	return s.engine.Run(":" + port)
}
