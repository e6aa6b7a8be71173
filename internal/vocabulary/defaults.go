package vocabulary

import "ecotourism-workers/pkg/registry"

func syn(pairs ...string) []registry.Synonym {
	out := make([]registry.Synonym, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, registry.Synonym{Surface: pairs[i], Canonical: pairs[i+1]})
	}
	return out
}

// DefaultDocument returns the built-in bilingual French/English vocabulary.
func DefaultDocument() *registry.VocabularyDocument {
	return &registry.VocabularyDocument{
		Version:     "1.0.0",
		LastUpdated: "2025-01-01T00:00:00Z",
		Difficulty: syn(
			"facile", "Easy", "simple", "Easy", "débutant", "Easy",
			"moyen", "Moderate", "moyenne", "Moderate", "modéré", "Moderate",
			"modérée", "Moderate", "intermédiaire", "Moderate",
			"difficile", "Difficult", "dur", "Difficult", "expert", "Difficult",
			"avancé", "Difficult",
			"easy", "Easy", "beginner", "Easy",
			"moderate", "Moderate", "medium", "Moderate", "intermediate", "Moderate",
			"difficult", "Difficult", "hard", "Difficult", "advanced", "Difficult",
		),
		Season: syn(
			"printemps", "Spring", "été", "Summer", "automne", "Autumn", "hiver", "Winter",
			"spring", "Spring", "summer", "Summer", "autumn", "Autumn",
			"fall", "Autumn", "winter", "Winter",
		),
		Entities: map[string][]registry.Synonym{
			"activity_type": syn(
				"aventure", "AdventureActivity", "aventureuse", "AdventureActivity",
				"sport", "AdventureActivity", "sportif", "AdventureActivity",
				"culturel", "CulturalActivity", "culturelle", "CulturalActivity",
				"culture", "CulturalActivity", "historique", "CulturalActivity",
				"musée", "CulturalActivity", "visite", "CulturalActivity",
				"nature", "NatureActivity", "naturelle", "NatureActivity",
				"écologique", "NatureActivity", "faune", "NatureActivity",
				"flore", "NatureActivity", "observation", "NatureActivity",
				"adventure", "AdventureActivity", "cultural", "CulturalActivity",
				"historic", "CulturalActivity", "museum", "CulturalActivity",
				"wildlife", "NatureActivity", "fauna", "NatureActivity",
			),
			"accommodation_type": syn(
				"eco-lodge", "EcoLodge", "ecolodge", "EcoLodge",
				"gîte", "GuestHouse", "gite", "GuestHouse",
				"maison d'hôtes", "GuestHouse", "chambre d'hôtes", "GuestHouse",
				"auberge", "GuestHouse", "hôtel", "Hotel", "hotel", "Hotel",
				"guest house", "GuestHouse", "guesthouse", "GuestHouse",
				"bed and breakfast", "GuestHouse", "b&b", "GuestHouse",
			),
			"transport_type": syn(
				"vélo", "Bike", "velo", "Bike", "bicyclette", "Bike",
				"voiture électrique", "ElectricVehicle", "véhicule électrique", "ElectricVehicle",
				"ev", "ElectricVehicle", "transport public", "PublicTransport",
				"transport en commun", "PublicTransport", "bus", "PublicTransport",
				"métro", "PublicTransport", "metro", "PublicTransport",
				"train", "PublicTransport", "tram", "PublicTransport",
				"bike", "Bike", "bicycle", "Bike",
				"electric vehicle", "ElectricVehicle", "electric car", "ElectricVehicle",
				"public transport", "PublicTransport", "public transportation", "PublicTransport",
			),
		},
		Amenities: syn(
			"piscine", "hasSwimmingPool", "spa", "hasSpa",
			"restaurant", "hasRestaurant", "wifi", "wifiAvailable",
			"parking", "parkingAvailable",
			"swimming pool", "hasSwimmingPool", "pool", "hasSwimmingPool",
		),
		DomainKeywords: map[string][]string{
			"activities": {
				"activité", "activités", "faire", "randonnée", "plongée",
				"observation", "tour", "visite", "excursion", "balade",
				"activity", "activities", "hiking", "diving", "what to do",
			},
			"accommodations": {
				"hébergement", "hébergements", "hôtel", "lodge", "gîte",
				"auberge", "dormir", "nuit", "où dormir", "séjour",
				"accommodation", "accommodations", "hotel", "stay", "sleep",
			},
			"transport": {
				"transport", "vélo", "voiture", "bus", "déplacement",
				"aller", "se déplacer", "circulation",
				"transportation", "bike", "car", "vehicle", "travel", "go",
			},
			"seasons":        {"saison", "season", "quand", "when", "période", "weather"},
			"sustainability": {"durable", "sustainable", "carbone", "carbon", "indicateur"},
			"products":       {"produit", "product", "local", "artisan", "handmade"},
			"recommendation": {"recommand", "suggest", "conseill", "meilleur", "best"},
		},
		EcoKeywords: []string{
			"écologique", "éco", "vert", "verte", "durable",
			"bio", "biologique", "renouvelable", "certifié",
			"ecological", "eco", "green", "sustainable", "organic", "renewable",
		},
		RatingKeywords: []string{
			"note", "évaluation", "avis", "meilleur", "meilleure",
			"top", "qualité", "recommandé",
			"rating", "review", "best", "quality", "recommended",
		},
		PricePatterns: []string{
			`(\d+)\s*€`,
			`(\d+)\s*euro`,
			`moins de (\d+)`,
			`under (\d+)`,
			`below (\d+)`,
			`max (\d+)`,
		},
		CapacityPatterns: []string{
			`(\d+)\s*(?:personne|person|people|guest|participant)`,
			`pour\s*(\d+)`,
			`for\s*(\d+)`,
		},
	}
}
