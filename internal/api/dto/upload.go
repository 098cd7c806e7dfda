package dto

// UploadResponse echoes parsed CSV rows in request shape so the client can
// review them and feed them straight back into the optimize endpoint.
type UploadResponse struct {
	Count      int               `json:"count"`
	Deliveries []DeliveryRequest `json:"deliveries"`
}
