package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"sigs.k8s.io/controller-runtime/pkg/log"

	apiv1 "github.com/Sameer-kulkarni-sk/ACS-GCP/api/v1"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type endpoint struct {
	Path        string
	Description string
}

var endpoints = []endpoint{
	{"/health", "health check"},
	{"/metrics", "Prometheus metrics"},
	{"/api/info", "application info"},
	{"/api/instance", "instance identity and request telemetry"},
	{"/api/comparison", "App Engine vs Kubernetes Engine comparison"},
	{"/api/metrics", "system metrics"},
	{"/api/cluster-status", "cluster topology"},
}

type indexData struct {
	App       apiv1.AppInfo
	Instance  apiv1.InstanceIdentity
	Endpoints []endpoint
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexData{
		App:       s.opts.Collector.App(),
		Instance:  s.opts.Identity,
		Endpoints: endpoints,
	})
	if err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to render index page")
		writeInternalError(w, r, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
