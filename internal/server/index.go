package server

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	uiconfig "github.com/Its-donkey/luxe-portfolio/internal/ui/config"
)

// indexHandler serves index.html with the body dataset the page reads at startup.
// The file is read per request so edits show up on reload.
func (s *Server) indexHandler() http.Handler {
	path := filepath.Join(s.root, "index.html")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := s.renderIndex(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			http.NotFound(w, r)
			return
		case err != nil:
			s.log.Error("rendering index", zap.String("path", path), zap.Error(err))
			http.Error(w, "index unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	})
}

func (s *Server) renderIndex(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	body := doc.Find("body").First()
	if s.cfg.Contact.Upstream != "" {
		body.SetAttr(uiconfig.DataFormEndpoint, s.cfg.Contact.Path)
	}
	if s.cfg.Reload.Enabled && s.broker != nil {
		body.SetAttr(uiconfig.DataDevReload, s.cfg.Reload.Path)
	}
	doc.Find("#year").SetText(strconv.Itoa(s.now().Year()))

	var buf bytes.Buffer
	for _, node := range doc.Nodes {
		if err := html.Render(&buf, node); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
