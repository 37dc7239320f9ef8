package types

import "time"

// ContractRecord is the customer and object data extracted from one contract file.
type ContractRecord struct {
	FileName          string  `json:"file_name"`
	FilePath          string  `json:"file_path"`
	Customer          string  `json:"customer"`
	ObjectDescription *string `json:"object_description"`
}

// Object returns the object description or an empty string.
func (r ContractRecord) Object() string {
	if r.ObjectDescription == nil {
		return ""
	}
	return *r.ObjectDescription
}

// ContractCache is the persisted result of the latest contracts directory scan.
type ContractCache struct {
	Contracts   []ContractRecord `json:"contracts"`
	LastUpdated *time.Time       `json:"last_updated"`
}

// ContractStats summarizes the contract cache.
type ContractStats struct {
	TotalContracts  int        `json:"total_contracts"`
	UniqueCustomers int        `json:"unique_customers"`
	LastUpdated     *time.Time `json:"last_updated"`
}
