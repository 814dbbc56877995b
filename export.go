package placefinder

import "encoding/json"

// ExportFilename is the suggested name of a downloaded export document.
const ExportFilename = "saved_places.json"

// ExportRecord is one saved place in the export document.
type ExportRecord struct {
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Location    *Location `json:"location"`
}

// ExportRecords maps saved places to export records, preserving order.
func ExportRecords(places []*PlaceDetails) []ExportRecord {
	records := make([]ExportRecord, 0, len(places))
	for _, p := range places {
		tags := p.Types
		if tags == nil {
			tags = []string{}
		}
		records = append(records, ExportRecord{
			Name:        p.Name,
			Address:     p.FormattedAddress,
			Description: p.Summary,
			Tags:        tags,
			Location:    p.Location,
		})
	}
	return records
}

// Export renders places as a pretty-printed JSON array with a two space
// indent. A missing location is encoded as null.
func Export(places []*PlaceDetails) ([]byte, error) {
	return json.MarshalIndent(ExportRecords(places), "", "  ")
}
