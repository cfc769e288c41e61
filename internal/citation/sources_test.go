package citation

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixir/citation-service/internal/config"
	"github.com/helixir/citation-service/internal/domain"
)

func TestNewRegistry(t *testing.T) {
	cfg := config.SourcesConfig{
		UserAgent:       "Test/1.0",
		Crossref:        config.SourceConfig{Enabled: true},
		PubMed:          config.SourceConfig{Enabled: true},
		GoogleBooks:     config.SourceConfig{Enabled: true},
		SemanticScholar: config.SourceConfig{Enabled: false},
		Web:             config.SourceConfig{Enabled: true},
	}

	registry := NewRegistry(cfg, nil, zerolog.Nop())

	t.Run("kinds of enabled sources", func(t *testing.T) {
		assert.Equal(t, []domain.IdentifierKind{
			domain.KindDOI,
			domain.KindDOIURL,
			domain.KindPMID,
			domain.KindGoogleBooks,
			domain.KindWebURL,
		}, registry.Kinds())
	})

	t.Run("both DOI kinds share Crossref", func(t *testing.T) {
		doi, err := registry.Lookup(domain.KindDOI)
		require.NoError(t, err)
		doiURL, err := registry.Lookup(domain.KindDOIURL)
		require.NoError(t, err)

		assert.Equal(t, "Crossref", doi.Name())
		assert.Same(t, doi, doiURL)
	})

	t.Run("disabled source is registered but unavailable", func(t *testing.T) {
		_, err := registry.Lookup(domain.KindS2CID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
		assert.NotNil(t, registry.Get(domain.KindS2CID))
	})

	t.Run("enabled sources", func(t *testing.T) {
		var names []string
		for _, src := range registry.EnabledSources() {
			names = append(names, src.Name())
		}
		assert.ElementsMatch(t, []string{"Crossref", "PubMed", "Google Books", "web"}, names)
	})
}
