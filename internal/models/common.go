// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a JSON text column.
// Both relational adapters share this encoding so list fields round-trip
// identically regardless of the backing engine.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}

	return json.Unmarshal(data, (*[]string)(l))
}

// Enums
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Wilayas is the fixed list of Algerian administrative regions used as the
// location facet. Filtering requires an exact match against one of these.
var Wilayas = []string{
	"Adrar", "Chlef", "Laghouat", "Oum El Bouaghi", "Batna", "Béjaïa",
	"Biskra", "Béchar", "Blida", "Bouira", "Tamanrasset", "Tébessa",
	"Tlemcen", "Tiaret", "Tizi Ouzou", "Algiers", "Djelfa", "Jijel",
	"Sétif", "Saïda", "Skikda", "Sidi Bel Abbès", "Annaba", "Guelma",
	"Constantine", "Médéa", "Mostaganem", "M'Sila", "Mascara", "Ouargla",
	"Oran", "El Bayadh", "Illizi", "Bordj Bou Arréridj", "Boumerdès",
	"El Tarf", "Tindouf", "Tissemsilt", "El Oued", "Khenchela",
	"Souk Ahras", "Tipaza", "Mila", "Aïn Defla", "Naâma",
	"Aïn Témouchent", "Ghardaïa", "Relizane",
}

// Categories is the fixed list of industrial sector codes.
var Categories = []string{
	"food", "textile", "construction", "chemicals", "plastics",
	"metallurgy", "electronics", "pharmaceutical", "automotive",
	"furniture", "paper", "agriculture", "energy", "packaging",
}

func IsValidWilaya(w string) bool {
	for _, v := range Wilayas {
		if v == w {
			return true
		}
	}
	return false
}

func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
