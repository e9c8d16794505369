package mid

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/web"
)

// corsMethods are the methods the ledger api routes.
const corsMethods = "GET, POST, PUT, OPTIONS"

// corsHeaders are the request headers a browser may send to the ledger api.
const corsHeaders = "Origin, Accept, Content-Type, Content-Length"

// Cors sets the response headers needed for Cross-Origin Resource Sharing so
// a browser based front end can drive the ledger.
func Cors(origin string) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Set the CORS headers to the response.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", corsMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsHeaders)
			w.Header().Set("Access-Control-Max-Age", "86400")

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
