package model

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

// BookQuery describes one page of books. Zero Page or Size disables paging.
type BookQuery struct {
	Page      int
	Size      int
	Sort      string
	Direction Direction
}

// Image is an uploaded picture before it is stored.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
