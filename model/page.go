package model

// Page selects the [From, From+Size) slice of a sorted result set. A nil
// *Page means the whole, unpaged result.
type Page struct {
	From int
	Size int
}
