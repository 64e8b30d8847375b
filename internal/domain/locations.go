package domain

import "time"

// HospitalLocation is a duty site with its seat capacity
type HospitalLocation struct {
	Name        string
	Capacity    int
	Description string
}

// HospitalLocations перечень площадок дежурств с лимитами мест.
// Порядок важен: от него зависит помесячная ротация.
var HospitalLocations = []HospitalLocation{
	{Name: "ISDH - Magsingal", Capacity: 4, Description: "Ilocos Sur District Hospital - Magsingal"},
	{Name: "ISDH - Sinait", Capacity: 4, Description: "Ilocos Sur District Hospital - Sinait"},
	{Name: "ISDH - Narvacan", Capacity: 4, Description: "Ilocos Sur District Hospital - Narvacan"},
	{Name: "ISPH - Gab. Silang", Capacity: 2, Description: "Ilocos Sur Provincial Hospital - Gab. Silang"},
	{Name: "RHU - Sto. Domingo", Capacity: 4, Description: "Rural Health Unit - Sto. Domingo"},
	{Name: "RHU - Santa", Capacity: 4, Description: "Rural Health Unit - Santa"},
	{Name: "RHU - San Ildefonso", Capacity: 4, Description: "Rural Health Unit - San Ildefonso"},
	{Name: "RHU - Bantay", Capacity: 4, Description: "Rural Health Unit - Bantay"},
}

// LocationForMonth returns the hospital assigned to the month of the given
// date by the monthly rotation (month index modulo the number of sites)
func LocationForMonth(date time.Time) HospitalLocation {
	idx := int(date.Month()-1) % len(HospitalLocations)
	return HospitalLocations[idx]
}

// FindLocation looks a location up by name
func FindLocation(name string) (HospitalLocation, bool) {
	for _, loc := range HospitalLocations {
		if loc.Name == name {
			return loc, true
		}
	}
	return HospitalLocation{}, false
}
