package service

import "sort"

// CatalogServiceType is one bookable service offering with its multiplier.
type CatalogServiceType struct {
	ID         string
	Multiplier float64
}

// CatalogFrequency is one recurrence option with its discount rate.
type CatalogFrequency struct {
	ID       string
	Discount float64
}

// CatalogAddOn is one flat-priced add-on.
type CatalogAddOn struct {
	ID    string
	Price float64
}

// CatalogLocation is one service area with its price multiplier.
type CatalogLocation struct {
	ID         string
	Multiplier float64
}

// Catalog is the published rate sheet the funnel builds its pickers from.
type Catalog struct {
	BasePrice     float64
	SqftAllowance int
	ServiceTypes  []CatalogServiceType
	Frequencies   []CatalogFrequency
	AddOns        []CatalogAddOn
	Locations     []CatalogLocation
}

// BuildCatalog snapshots the rate tables in deterministic order.
func BuildCatalog() Catalog {
	catalog := Catalog{
		BasePrice:     basePrice,
		SqftAllowance: sqftAllowance,
	}

	for st, m := range serviceMultipliers {
		catalog.ServiceTypes = append(catalog.ServiceTypes, CatalogServiceType{ID: string(st), Multiplier: m})
	}
	sort.Slice(catalog.ServiceTypes, func(i, j int) bool {
		return catalog.ServiceTypes[i].ID < catalog.ServiceTypes[j].ID
	})

	for f, d := range frequencyDiscounts {
		catalog.Frequencies = append(catalog.Frequencies, CatalogFrequency{ID: string(f), Discount: d})
	}
	sort.Slice(catalog.Frequencies, func(i, j int) bool {
		return catalog.Frequencies[i].ID < catalog.Frequencies[j].ID
	})

	for id, price := range addOnPrices {
		catalog.AddOns = append(catalog.AddOns, CatalogAddOn{ID: id, Price: price})
	}
	sort.Slice(catalog.AddOns, func(i, j int) bool {
		return catalog.AddOns[i].ID < catalog.AddOns[j].ID
	})

	for id, m := range locationMultipliers {
		catalog.Locations = append(catalog.Locations, CatalogLocation{ID: id, Multiplier: m})
	}
	sort.Slice(catalog.Locations, func(i, j int) bool {
		return catalog.Locations[i].ID < catalog.Locations[j].ID
	})

	return catalog
}
