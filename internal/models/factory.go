// internal/models/factory.go
package models

import (
	"time"
)

type Factory struct {
	ID             string     `json:"id" gorm:"type:uuid;primaryKey" firestore:"id"`
	Name           string     `json:"name" gorm:"size:255;not null" firestore:"name"`
	NameAr         string     `json:"nameAr" gorm:"size:255;not null" firestore:"nameAr"`
	Description    string     `json:"description" gorm:"type:text;not null" firestore:"description"`
	DescriptionAr  string     `json:"descriptionAr" gorm:"type:text;not null" firestore:"descriptionAr"`
	Address        string     `json:"address" gorm:"size:500;not null" firestore:"address"`
	AddressAr      string     `json:"addressAr" gorm:"size:500;not null" firestore:"addressAr"`
	Wilaya         string     `json:"wilaya" gorm:"size:100;not null;index" firestore:"wilaya"`
	Category       string     `json:"category" gorm:"size:100;not null;index" firestore:"category"`
	Products       StringList `json:"products" gorm:"type:text" firestore:"products"`
	ProductsAr     StringList `json:"productsAr" gorm:"type:text" firestore:"productsAr"`
	Gallery        StringList `json:"gallery" gorm:"type:text" firestore:"gallery"`
	Certifications StringList `json:"certifications" gorm:"type:text" firestore:"certifications"`
	Phone          string     `json:"phone" gorm:"size:50;not null" firestore:"phone"`
	Email          string     `json:"email" gorm:"size:255;not null" firestore:"email"`
	Website        string     `json:"website,omitempty" gorm:"size:255" firestore:"website"`
	Latitude       string     `json:"latitude,omitempty" gorm:"size:50" firestore:"latitude"`
	Longitude      string     `json:"longitude,omitempty" gorm:"size:50" firestore:"longitude"`
	ViewsCount     int64      `json:"viewsCount" gorm:"default:0" firestore:"viewsCount"`
	Rating         float64    `json:"rating" gorm:"type:decimal(3,2);default:0" firestore:"rating"`
	ReviewsCount   int64      `json:"reviewsCount" gorm:"default:0" firestore:"reviewsCount"`
	Certified      bool       `json:"certified" gorm:"default:false" firestore:"certified"`
	Verified       bool       `json:"verified" gorm:"default:false" firestore:"verified"`
	OwnerID        string     `json:"ownerId,omitempty" gorm:"size:64;index" firestore:"ownerId"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"index" firestore:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" firestore:"updatedAt"`
}

// NormalizeLists replaces nil list fields with empty lists so every
// adapter serializes an omitted list as [] rather than null.
func (f *Factory) NormalizeLists() {
	if f.Products == nil {
		f.Products = StringList{}
	}
	if f.ProductsAr == nil {
		f.ProductsAr = StringList{}
	}
	if f.Gallery == nil {
		f.Gallery = StringList{}
	}
	if f.Certifications == nil {
		f.Certifications = StringList{}
	}
}

// FactoryUpdate carries a partial update. Nil fields are left untouched;
// UpdatedAt is always refreshed by the repository.
type FactoryUpdate struct {
	Name           *string     `json:"name,omitempty"`
	NameAr         *string     `json:"nameAr,omitempty"`
	Description    *string     `json:"description,omitempty"`
	DescriptionAr  *string     `json:"descriptionAr,omitempty"`
	Address        *string     `json:"address,omitempty"`
	AddressAr      *string     `json:"addressAr,omitempty"`
	Wilaya         *string     `json:"wilaya,omitempty"`
	Category       *string     `json:"category,omitempty"`
	Products       *StringList `json:"products,omitempty"`
	ProductsAr     *StringList `json:"productsAr,omitempty"`
	Gallery        *StringList `json:"gallery,omitempty"`
	Certifications *StringList `json:"certifications,omitempty"`
	Phone          *string     `json:"phone,omitempty"`
	Email          *string     `json:"email,omitempty"`
	Website        *string     `json:"website,omitempty"`
	Latitude       *string     `json:"latitude,omitempty"`
	Longitude      *string     `json:"longitude,omitempty"`
	Rating         *float64    `json:"rating,omitempty"`
	ReviewsCount   *int64      `json:"reviewsCount,omitempty"`
	Certified      *bool       `json:"certified,omitempty"`
	Verified       *bool       `json:"verified,omitempty"`
	OwnerID        *string     `json:"ownerId,omitempty"`
}

// Fields returns the update as a column→value map in the order the
// relational adapters bind them. An empty map means nothing to change.
func (u *FactoryUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	set := func(col string, ptr interface{}) {
		switch v := ptr.(type) {
		case *string:
			if v != nil {
				fields[col] = *v
			}
		case *StringList:
			if v != nil {
				fields[col] = *v
			}
		case *float64:
			if v != nil {
				fields[col] = *v
			}
		case *int64:
			if v != nil {
				fields[col] = *v
			}
		case *bool:
			if v != nil {
				fields[col] = *v
			}
		}
	}

	set("name", u.Name)
	set("name_ar", u.NameAr)
	set("description", u.Description)
	set("description_ar", u.DescriptionAr)
	set("address", u.Address)
	set("address_ar", u.AddressAr)
	set("wilaya", u.Wilaya)
	set("category", u.Category)
	set("products", u.Products)
	set("products_ar", u.ProductsAr)
	set("gallery", u.Gallery)
	set("certifications", u.Certifications)
	set("phone", u.Phone)
	set("email", u.Email)
	set("website", u.Website)
	set("latitude", u.Latitude)
	set("longitude", u.Longitude)
	set("rating", u.Rating)
	set("reviews_count", u.ReviewsCount)
	set("certified", u.Certified)
	set("verified", u.Verified)
	set("owner_id", u.OwnerID)

	return fields
}

// DirectoryStats are the aggregate counts served by the public stats route.
type DirectoryStats struct {
	TotalFactories int64 `json:"totalFactories"`
	Categories     int64 `json:"categories"`
	Wilayas        int64 `json:"wilayas"`
}
