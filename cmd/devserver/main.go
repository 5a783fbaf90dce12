package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ingyamilmolinar/midiclip/core/clip"
	game_log "github.com/ingyamilmolinar/midiclip/internal/log"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd().Execute())
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		dir      string
		smfPath  string
		track    int
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serves the midiclip host page and wasm bundle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := game_log.New(os.Stderr, game_log.LevelFromString(logLevel)).Named("DEVSERVER")
			var state *clip.State
			if smfPath != "" {
				var err error
				if state, err = clip.ReadSMFFile(smfPath, track); err != nil {
					return err
				}
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           newHandler(dir, state, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Infof("serving %s on %s", dir, addr)
			return srv.ListenAndServe()
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "listen address")
	f.StringVar(&dir, "dir", "web", "directory holding index.html and the wasm bundle")
	f.StringVar(&smfPath, "smf", "", "Standard MIDI File served as /clip.json")
	f.IntVar(&track, "track", 0, "track of --smf to serve")
	f.StringVar(&logLevel, "log-level", "INFO", "DEBUG, INFO, ERROR or NONE")
	return cmd
}

// newHandler routes the dev endpoints. Plugin bundles are loaded from other
// origins, hence the permissive CORS policy.
func newHandler(dir string, state *clip.State, logger *game_log.Logger) http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)
	r.HandleFunc("/clip.json", func(w http.ResponseWriter, _ *http.Request) {
		if state == nil {
			http.Error(w, "no clip loaded", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			logger.Errorf("encode clip: %v", err)
		}
	}).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(wasmContentType(http.FileServer(http.Dir(dir))))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Debugf("%s %s", req.Method, req.URL.Path)
			next.ServeHTTP(w, req)
		})
	})
	return cors.AllowAll().Handler(r)
}

// wasmContentType makes sure .wasm is served as application/wasm so
// WebAssembly.instantiateStreaming accepts it.
func wasmContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, ".wasm") {
			w.Header().Set("Content-Type", "application/wasm")
		}
		next.ServeHTTP(w, req)
	})
}
