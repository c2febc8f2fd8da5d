package meeting

// ListRecentRequest carries the query parameters of the recent-meetings API
type ListRecentRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
