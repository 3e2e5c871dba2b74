// internal/event/types.go
package event

const (
	ViewportResized EventType = "ViewportResized" // Изменился размер окна, Data — surface.Size
	FieldMounted    EventType = "FieldMounted"    // Слой частиц смонтирован
	FieldUnmounted  EventType = "FieldUnmounted"  // Слой частиц снят
)
