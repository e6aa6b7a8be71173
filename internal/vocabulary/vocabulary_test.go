package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"ecotourism-workers/internal/models"
	"ecotourism-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	// "e" followed by a combining acute accent composes to "é".
	decomposed := "E\u0301cologique"
	assert.Equal(t, "écologique", Normalize(decomposed))
	assert.Equal(t, "hôtel", Normalize("HÔTEL"))
	assert.Equal(t, "", Normalize(""))
}

func TestTable_MatchFirstEntryWins(t *testing.T) {
	table := Table{
		{Surface: "nature", Canonical: "NatureActivity"},
		{Surface: "culture", Canonical: "CulturalActivity"},
	}

	match, ok := table.Match("culture et nature")
	require.True(t, ok)
	assert.Equal(t, "NatureActivity", match.Canonical, "table order decides, not text position")

	_, ok = table.Match("plage")
	assert.False(t, ok)
}

func TestTable_Canonicals(t *testing.T) {
	v := Default()
	assert.Equal(t, []string{"Easy", "Moderate", "Difficult"}, v.DifficultyTable().Canonicals())
	assert.Equal(t, []string{"Spring", "Summer", "Autumn", "Winter"}, v.SeasonTable().Canonicals())
	assert.Equal(t,
		[]string{"AdventureActivity", "CulturalActivity", "NatureActivity"},
		v.EntityTable(models.CategoryActivityType).Canonicals())
	assert.Equal(t,
		[]string{"EcoLodge", "GuestHouse", "Hotel"},
		v.EntityTable(models.CategoryAccommodationType).Canonicals())
	assert.Equal(t,
		[]string{"Bike", "ElectricVehicle", "PublicTransport"},
		v.EntityTable(models.CategoryTransportType).Canonicals())
}

func TestDefault_Tables(t *testing.T) {
	v := Default()

	assert.Equal(t, "1.0.0", v.Version())
	assert.Len(t, v.PricePatterns(), 6)
	assert.Len(t, v.CapacityPatterns(), 3)
	assert.Contains(t, v.DomainKeywords(models.DomainAccommodations), "hébergement")
	assert.Empty(t, v.DomainKeywords(models.DomainGenericSearch))
	assert.True(t, ContainsAny("un séjour écologique", v.EcoKeywords()))
	assert.False(t, ContainsAny("un séjour", v.RatingKeywords()))
}

func TestNew_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *registry.VocabularyDocument)
	}{
		{
			name: "unknown entity category",
			mutate: func(doc *registry.VocabularyDocument) {
				doc.Entities["cuisine_type"] = []registry.Synonym{{Surface: "crêpe", Canonical: "Crepe"}}
			},
		},
		{
			name: "unknown domain",
			mutate: func(doc *registry.VocabularyDocument) {
				doc.DomainKeywords["weather"] = []string{"pluie"}
			},
		},
		{
			name: "generic search cannot have keywords",
			mutate: func(doc *registry.VocabularyDocument) {
				doc.DomainKeywords["search"] = []string{"cherche"}
			},
		},
		{
			name: "unknown amenity flag",
			mutate: func(doc *registry.VocabularyDocument) {
				doc.Amenities = append(doc.Amenities, registry.Synonym{Surface: "sauna", Canonical: "hasSauna"})
			},
		},
		{
			name: "pattern without capture group",
			mutate: func(doc *registry.VocabularyDocument) {
				doc.PricePatterns = []string{`\d+ €`}
			},
		},
		{
			name: "broken pattern",
			mutate: func(doc *registry.VocabularyDocument) {
				doc.CapacityPatterns = []string{`(\d+`}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DefaultDocument()
			tt.mutate(doc)

			_, err := New(doc)
			assert.ErrorIs(t, err, ErrInvalidVocabulary)
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.json")
	require.NoError(t, registry.SaveDocument(path, Default().Document()))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Default().DifficultyTable(), loaded.DifficultyTable())
	assert.Equal(t, Default().EntityTable(models.CategoryTransportType), loaded.EntityTable(models.CategoryTransportType))
	assert.Equal(t, Default().DomainKeywords(models.DomainSeasons), loaded.DomainKeywords(models.DomainSeasons))
	assert.Len(t, loaded.PricePatterns(), 6)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().AmenityTable(), v.AmenityTable())
}

func TestLoad_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"difficulty": "easy"}`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, registry.ErrInvalidDocument)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
