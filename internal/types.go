package internal

// ServerRow is one spreadsheet line as read from the sheet. Missing columns are empty.
type ServerRow struct {
	RowNumber int
	Model     string
	RAM       string
	HDD       string
	Location  string
	Price     string
}

// ServerRecord is the normalized form of a ServerRow. Nil pointers mean the
// field could not be parsed; raw fields always carry the original cell text.
type ServerRecord struct {
	Model        string
	CPU          *string
	RAMGB        *int
	HDD          string
	StorageGB    *int
	LocationCity *string
	LocationCode *string
	PriceEUR     *float64
	RawPrice     string
	RawRAM       string
	RawHDD       string
}

type StoredServer struct {
	ID int
	ServerRecord
	CreatedAt string
}

type ServerMetrics struct {
	TotalServers   int
	MinPrice       *float64
	MaxPrice       *float64
	LocationsCount int
	LastUpdated    *string
}
