package handler

// CountResponse is the body of GET /phone/count.
type CountResponse struct {
	TotalPossibleValidNumbers int `json:"totalPossibleValidNumbers"`
	RegisteredValidNumbers    int `json:"registeredValidNumbers"`
}
