package models

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 25
)

// PageRequest is a zero-based page window.
type PageRequest struct {
	PageNumber int
	PageSize   int
}

// NewPageRequest clamps a negative number to DefaultPageNumber and a
// non-positive size to DefaultPageSize.
func NewPageRequest(pageNumber, pageSize int) PageRequest {
	if pageNumber < 0 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return PageRequest{PageNumber: pageNumber, PageSize: pageSize}
}

// Offset is the number of rows skipped before the page starts.
func (p PageRequest) Offset() int {
	return p.PageNumber * p.PageSize
}

// BeerFilter holds the optional listing predicates. Empty fields are not applied.
type BeerFilter struct {
	BeerName  string
	BeerStyle BeerStyle
}

// Pageable describes the window a BeerPagedList was produced for.
type Pageable struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	Offset     int `json:"offset"`
}

// BeerPagedList is one page of beers.
//
// TotalElements is the number of beers on this page, not a count across all
// pages; TotalPages is derived from it the same way.
type BeerPagedList struct {
	Content          []BeerDto `json:"content"`
	Pageable         Pageable  `json:"pageable"`
	TotalElements    int64     `json:"totalElements"`
	TotalPages       int       `json:"totalPages"`
	Number           int       `json:"number"`
	Size             int       `json:"size"`
	NumberOfElements int       `json:"numberOfElements"`
}

// NewBeerPagedList wraps content for the given page.
func NewBeerPagedList(content []BeerDto, page PageRequest, total int64) *BeerPagedList {
	if content == nil {
		content = []BeerDto{}
	}
	totalPages := 0
	if page.PageSize > 0 {
		totalPages = int((total + int64(page.PageSize) - 1) / int64(page.PageSize))
	}
	return &BeerPagedList{
		Content: content,
		Pageable: Pageable{
			PageNumber: page.PageNumber,
			PageSize:   page.PageSize,
			Offset:     page.Offset(),
		},
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           page.PageNumber,
		Size:             page.PageSize,
		NumberOfElements: len(content),
	}
}
