package api

import (
	"net/http"

	"hookgate/internal/model"
)

// routeSlug maps a provider slot to its URL path segment.
var routeSlug = map[model.Provider]string{
	model.ProviderPayments:       "payments",
	model.ProviderRegistrar:      "registrar",
	model.ProviderStorefront:     "storefront",
	model.ProviderPOS:            "pos",
	model.ProviderPluginPlatform: "plugin",
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/webhooks", s.handleDescriptor)
	for _, provider := range s.registry.Providers() {
		adapter, err := s.registry.Adapter(provider)
		if err != nil {
			continue
		}
		slug, ok := routeSlug[provider]
		if !ok {
			slug = string(provider)
		}
		mux.HandleFunc("/v1/webhooks/"+slug, s.handleWebhook(adapter))
	}
	return mux
}
