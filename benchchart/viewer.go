// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/safehtml/template"
	"golang.org/x/net/netutil"
	"gonum.org/v1/plot/vg"
)

// A Viewer displays charts as a web page served from a local address.
// The page has a button that dismisses the chart.
//
// The zero value is ready to use.
type Viewer struct {
	// Addr is the address to listen on. If empty, "localhost:0"
	// is used, which picks a free port.
	Addr string

	// Width and Height are the chart's size. If zero, the chart
	// is 6.4 by 4.8 inches.
	Width, Height vg.Length

	// DPI is the resolution of the PNG rendering. If zero, 100.
	DPI int

	// Notify is called with the page URL once the viewer is
	// listening. If nil, the URL is logged.
	Notify func(url string)
}

// maxConns bounds the viewer's concurrent connections. One browser
// tab needs only a few.
const maxConns = 8

// Show serves c until the page's dismiss button is pressed or ctx is
// done. The server is shut down before Show returns. If ctx ends
// first, Show returns ctx.Err().
func (v *Viewer) Show(ctx context.Context, c *Chart) error {
	width, height := v.Width, v.Height
	if width == 0 {
		width = 6.4 * vg.Inch
	}
	if height == 0 {
		height = 4.8 * vg.Inch
	}
	dpi := v.DPI
	if dpi == 0 {
		dpi = 100
	}

	// Draw up front: drawing a plot adjusts its axes, so it must
	// not happen concurrently from request handlers.
	var svg, png bytes.Buffer
	if err := c.WriteSVG(&svg, width, height); err != nil {
		return err
	}
	if err := c.WritePNG(&png, width, height, dpi); err != nil {
		return err
	}

	addr := v.Addr
	if addr == "" {
		addr = "localhost:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	ln = netutil.LimitListener(ln, maxConns)

	s := &viewerServer{
		title:     c.Title(),
		svg:       svg.Bytes(),
		png:       png.Bytes(),
		dismissed: make(chan struct{}),
	}
	mux := http.NewServeMux()
	s.RegisterOnMux(mux)
	srv := &http.Server{Handler: mux}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	url := "http://" + ln.Addr().String() + "/"
	if v.Notify != nil {
		v.Notify(url)
	} else {
		log.Printf("showing chart at %s", url)
	}

	select {
	case <-s.dismissed:
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-serveErr:
	}

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(sctx); serr != nil && err == nil {
		err = serr
	}
	return err
}

// viewerServer serves one chart.
type viewerServer struct {
	title    string
	svg, png []byte

	once      sync.Once
	dismissed chan struct{}
}

// RegisterOnMux registers the viewer's handlers on mux.
func (s *viewerServer) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/chart.svg", s.image("image/svg+xml", s.svg))
	mux.HandleFunc("/chart.png", s.image("image/png", s.png))
	mux.HandleFunc("/dismiss", s.dismiss)
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>benchplot</title>
</head>
<body>
{{if .Title}}<h1>{{.Title}}</h1>{{end}}
<p><img src="/chart.svg" alt="chart"></p>
<p><a href="/chart.png">PNG</a></p>
<form method="post" action="/dismiss"><button type="submit">Dismiss</button></form>
</body>
</html>
`))

func (s *viewerServer) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, struct{ Title string }{s.title}); err != nil {
		http.Error(w, err.Error(), 500)
	}
}

func (s *viewerServer) image(contentType string, data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		w.Write(data)
	}
}

func (s *viewerServer) dismiss(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Chart dismissed. You can close this page.\n"))
	s.once.Do(func() { close(s.dismissed) })
}
