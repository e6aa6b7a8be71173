package sparql

import (
	"fmt"

	"ecotourism-workers/internal/models"
)

// RatingThreshold is the minimum rating applied when a question asks for
// well rated results.
const RatingThreshold = "4.0"

// ResultLimit caps every synthesized query.
const ResultLimit = 20

const booleanTrue = `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`

// Template describes the query shape for one domain.
type Template struct {
	// Subject is the variable name bound to each result resource.
	Subject string
	// Types lists the ontology classes a result may belong to. More than
	// one type renders as a UNION unless an entity narrows it down.
	Types []string
	// Category is the entity category that may narrow Types.
	Category   models.EntityCategory
	Required   []string
	Optional   []string
	Predicates []Predicate
	OrderBy    string
}

// Attributes returns the required then optional attribute names.
func (t *Template) Attributes() []string {
	out := make([]string, 0, len(t.Required)+len(t.Optional))
	out = append(out, t.Required...)
	return append(out, t.Optional...)
}

// Predicate turns one filter entry into a FILTER expression. It reports
// false when the entry is absent or unusable.
type Predicate func(in input) (string, bool)

// input is what predicates see: the filters plus the allowed string values
// per filter key.
type input struct {
	filters models.FilterMap
	allowed map[string]map[string]bool
}

// canonical returns a string filter only if it is a known vocabulary value.
func (in input) canonical(key string) (string, bool) {
	v, ok := in.filters.String(key)
	if !ok || !in.allowed[key][v] || !safeLiteral(v) {
		return "", false
	}
	return v, true
}

func atMost(key, variable string) Predicate {
	return func(in input) (string, bool) {
		n, ok := in.filters.Int(key)
		if !ok || n < 0 {
			return "", false
		}
		return fmt.Sprintf("?%s <= %d", variable, n), true
	}
}

func atLeast(key, variable string) Predicate {
	return func(in input) (string, bool) {
		n, ok := in.filters.Int(key)
		if !ok || n < 0 {
			return "", false
		}
		return fmt.Sprintf("?%s >= %d", variable, n), true
	}
}

func isTrue(key, variable string) Predicate {
	return func(in input) (string, bool) {
		if !in.filters.Flag(key) {
			return "", false
		}
		return fmt.Sprintf("?%s = %s", variable, booleanTrue), true
	}
}

func whenFlag(key, expr string) Predicate {
	return func(in input) (string, bool) {
		return expr, in.filters.Flag(key)
	}
}

func wellRated(variable string) Predicate {
	return whenFlag(models.FilterHighRating, fmt.Sprintf("?%s >= %s", variable, RatingThreshold))
}

func containsValue(key, variable string) Predicate {
	return func(in input) (string, bool) {
		v, ok := in.canonical(key)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(`CONTAINS(LCASE(?%s), LCASE("%s"))`, variable, v), true
	}
}

func equalsValue(key, variable string) Predicate {
	return func(in input) (string, bool) {
		v, ok := in.canonical(key)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(`?%s = "%s"`, variable, v), true
	}
}

var activities = &Template{
	Subject:  "activity",
	Types:    []string{"AdventureActivity", "CulturalActivity", "NatureActivity"},
	Category: models.CategoryActivityType,
	Required: []string{"activityName"},
	Optional: []string{
		"activityDescription", "difficultyLevel", "pricePerPerson", "durationHours",
		"activityRating", "bestTimeToVisit", "maxParticipants", "minAge",
	},
	Predicates: []Predicate{
		containsValue(models.FilterDifficulty, "difficultyLevel"),
		containsValue(models.FilterSeason, "bestTimeToVisit"),
		atMost(models.FilterMaxPrice, "pricePerPerson"),
		wellRated("activityRating"),
		atLeast(models.FilterMinCapacity, "maxParticipants"),
	},
	OrderBy: "DESC(?activityRating)",
}

var accommodations = &Template{
	Subject:  "accommodation",
	Types:    []string{"EcoLodge", "GuestHouse", "Hotel"},
	Category: models.CategoryAccommodationType,
	Required: []string{"accommodationName"},
	Optional: []string{
		"accommodationDescription", "pricePerNight", "accommodationRating", "ecoCertified",
		"numberOfRooms", "maxGuests", "wifiAvailable", "parkingAvailable",
		"hasSwimmingPool", "hasSpa", "hasRestaurant",
	},
	Predicates: []Predicate{
		isTrue(models.FilterEcoFriendly, "ecoCertified"),
		atMost(models.FilterMaxPrice, "pricePerNight"),
		wellRated("accommodationRating"),
		atLeast(models.FilterMinCapacity, "maxGuests"),
		isTrue(models.FilterHasSwimmingPool, "hasSwimmingPool"),
		isTrue(models.FilterHasSpa, "hasSpa"),
		isTrue(models.FilterHasRestaurant, "hasRestaurant"),
		isTrue(models.FilterWifiAvailable, "wifiAvailable"),
		isTrue(models.FilterParkingAvailable, "parkingAvailable"),
	},
	OrderBy: "?pricePerNight",
}

var transport = &Template{
	Subject:  "transport",
	Types:    []string{"Bike", "ElectricVehicle", "PublicTransport"},
	Category: models.CategoryTransportType,
	Required: []string{"transportName"},
	Optional: []string{
		"transportType", "pricePerKm", "carbonEmissionPerKm", "capacity",
		"availability", "averageSpeed",
	},
	Predicates: []Predicate{
		whenFlag(models.FilterEcoFriendly, "?carbonEmissionPerKm = 0.0"),
		atMost(models.FilterMaxPrice, "pricePerKm"),
		atLeast(models.FilterMinCapacity, "capacity"),
	},
	OrderBy: "?carbonEmissionPerKm",
}

var seasons = &Template{
	Subject:  "season",
	Types:    []string{"Season"},
	Required: []string{"seasonName"},
	Optional: []string{"startDate", "endDate", "averageTemperature", "peakTourismSeason"},
	Predicates: []Predicate{
		equalsValue(models.FilterSeason, "seasonName"),
	},
	OrderBy: "?seasonName",
}

var sustainability = &Template{
	Subject:  "indicator",
	Types:    []string{"CarbonFootprint", "RenewableEnergyUsage", "WaterConsumption"},
	Required: []string{"indicatorName", "indicatorValue", "measurementUnit"},
	Optional: []string{"measurementDate", "targetValue"},
	OrderBy:  "?indicatorName",
}

var products = &Template{
	Subject:  "product",
	Types:    []string{"LocalProduct"},
	Required: []string{"productName", "productPrice"},
	Optional: []string{
		"productDescription", "productCategory", "isOrganic", "isHandmade",
		"producerName", "fairTradeCertified",
	},
	Predicates: []Predicate{
		isTrue(models.FilterEcoFriendly, "isOrganic"),
		atMost(models.FilterMaxPrice, "productPrice"),
	},
	OrderBy: "?productPrice",
}

// catalog is the entity order used when describing the ontology.
var catalog = []struct {
	domain   models.QueryDomain
	template *Template
}{
	{models.DomainActivities, activities},
	{models.DomainAccommodations, accommodations},
	{models.DomainTransport, transport},
	{models.DomainSeasons, seasons},
	{models.DomainSustainability, sustainability},
	{models.DomainProducts, products},
}

// TemplateFor returns the template used for a domain. Recommendation,
// GenericSearch and unknown domains share the activities template.
func TemplateFor(domain models.QueryDomain) *Template {
	for _, entry := range catalog {
		if entry.domain == domain {
			return entry.template
		}
	}
	return activities
}

// Entity describes one queryable entity kind.
type Entity struct {
	Domain     models.QueryDomain
	Types      []string
	Attributes []string
}

// Catalog lists every entity kind with its classes and attributes.
func Catalog() []Entity {
	out := make([]Entity, 0, len(catalog))
	for _, entry := range catalog {
		out = append(out, Entity{
			Domain:     entry.domain,
			Types:      append([]string(nil), entry.template.Types...),
			Attributes: entry.template.Attributes(),
		})
	}
	return out
}
