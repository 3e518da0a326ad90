package services

// SearchLimit exposes searchLimit to external tests.
const SearchLimit = searchLimit
