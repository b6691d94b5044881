package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/gogpu/tiledbg"
	"github.com/gogpu/tiledbg/internal/cache"
)

const (
	// maxFrameSide bounds the w and h query parameters of /frame.png.
	maxFrameSide = 4096

	shutdownTimeout = 5 * time.Second

	defaultCacheMB = 64

	// maxCachedTick bounds frame times that are cached; beyond it the
	// millisecond tick no longer fits comfortably in an int64.
	maxCachedTick = 1 << 53
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	config  string // material file
	addr    string // listen address
	cacheMB int    // encoded frame cache budget
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", cacheMB: defaultCacheMB}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered frames of a material over HTTP",
		Long: `Serve frames of a material over HTTP.

Routes:
  GET /frame.png?t=1.5&w=640&h=480   render one frame (w and h are optional)
  GET /params                        the resolved material parameters
  GET /stats                         frame cache statistics
  GET /healthz                       liveness probe

Frame times are rounded to the millisecond. For looping materials they
are reduced modulo the scroll period, so repeated frames come from the
cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "material file (TOML)")
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.cacheMB, "cache-mb", opts.cacheMB, "frame cache size in MiB (0 disables)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	m, err := c.loadMaterial(opts.config)
	if err != nil {
		return err
	}
	defer m.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(m, cache.New(opts.cacheMB<<20), c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("Serving frames", "addr", opts.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter wires the HTTP routes for one material.
func newRouter(m *material, frames *cache.FrameCache, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/params", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, newParamsView(m))
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, frames.Stats())
	})
	r.Get("/frame.png", frameHandler(m, frames, logger))

	return r
}

func frameHandler(m *material, frames *cache.FrameCache, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		t, err := queryFloat(q.Get("t"), 0)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad t: %v", err), http.StatusBadRequest)
			return
		}
		width, err := querySide(q.Get("w"))
		if err != nil {
			http.Error(w, fmt.Sprintf("bad w: %v", err), http.StatusBadRequest)
			return
		}
		height, err := querySide(q.Get("h"))
		if err != nil {
			http.Error(w, fmt.Sprintf("bad h: %v", err), http.StatusBadRequest)
			return
		}
		width, height = m.size(width, height)

		encode := func(t float64) ([]byte, error) {
			pm := tiledbg.NewPixmap(width, height)
			if err := m.renderer.Render(r.Context(), pm, m.params, t); err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			if err := pm.EncodePNG(&buf); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}

		var data []byte
		if tick, ok := frameTick(t, m.params.ScrollPeriod()); ok {
			key := cache.Key{Width: width, Height: height, Tick: tick}
			data, err = frames.GetOrCreate(key, func() ([]byte, error) {
				return encode(float64(tick) / 1000)
			})
		} else {
			data, err = encode(t)
		}
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			logger.Error("frame failed", "err", err)
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		_, _ = w.Write(data)
	}
}

// frameTick reduces t modulo a positive loop period and rounds it to the
// millisecond. It reports false when t is too large to key.
func frameTick(t, period float64) (int64, bool) {
	if period > 0 {
		t = math.Mod(t, period)
		if t < 0 {
			t += period
		}
	}
	ms := math.Round(t * 1000)
	if math.Abs(ms) > maxCachedTick {
		return 0, false
	}
	return int64(ms), true
}

// requestLogger logs each request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
				"bytes", ww.BytesWritten(), "duration", time.Since(start),
				"id", middleware.GetReqID(r.Context()))
		})
	}
}

// paramsView is the JSON form of the resolved material.
type paramsView struct {
	Tint         [4]float64 `json:"tint"`
	Scale        float64    `json:"scale"`
	Rotation     float64    `json:"rotation"`
	Stagger      float64    `json:"stagger"`
	Spacing      float64    `json:"spacing"`
	Scroll       [2]float64 `json:"scroll"`
	Texture      string     `json:"texture"`
	BaseTileSize float64    `json:"base_tile_size"`
	TilePeriod   float64    `json:"tile_period"`
	ScrollPeriod float64    `json:"scroll_period"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
}

func newParamsView(m *material) paramsView {
	p := m.params
	tint := p.Tint()
	w, h := m.size(0, 0)
	return paramsView{
		Tint:         [4]float64{tint.R, tint.G, tint.B, tint.A},
		Scale:        p.Scale(),
		Rotation:     p.Rotation(),
		Stagger:      p.Stagger(),
		Spacing:      p.Spacing(),
		Scroll:       [2]float64{p.Scroll().X, p.Scroll().Y},
		Texture:      string(p.Texture()),
		BaseTileSize: p.BaseTileSize(),
		TilePeriod:   p.TilePeriod(),
		ScrollPeriod: p.ScrollPeriod(),
		Width:        w,
		Height:       h,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func queryFloat(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return v, nil
}

// querySide parses an optional frame side length; 0 means unset.
func querySide(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > maxFrameSide {
		return 0, fmt.Errorf("must be in [1, %d]", maxFrameSide)
	}
	return n, nil
}
