package dashboard

import "github.com/de-tools/rate-atlas/pkg/models/domain"

// Annotate pairs each cycle start with the style at the same position.
// Cycles beyond the configured styles get DefaultCycleStyle.
func Annotate(starts []domain.CycleStart, styles []domain.CycleStyle, windowMonths int) []domain.CycleMarker {
	markers := make([]domain.CycleMarker, 0, len(starts))
	for i, s := range starts {
		style := DefaultCycleStyle
		if i < len(styles) {
			style = styles[i]
		}
		markers = append(markers, domain.CycleMarker{
			Index: i + 1,
			Start: s.Time,
			End:   s.AddDate(0, windowMonths, 0),
			Label: domain.CycleLabel(i+1, s.Time),
			Style: style,
		})
	}
	return markers
}
