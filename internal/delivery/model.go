package delivery

import (
	"errors"

	"github.com/danomnoms/server/internal/core/validate"
	"github.com/tidwall/gjson"
)

type Config struct {
	DeveloperID   string `envconfig:"DOORDASH_DEVELOPER_ID"`
	KeyID         string `envconfig:"DOORDASH_KEY_ID"`
	SigningSecret string `envconfig:"DOORDASH_SIGNING_SECRET"`
	BaseURL       string `envconfig:"DOORDASH_BASE_URL" default:"https://openapi.doordash.com/drive/v2"`
	// Timeout in seconds for every upstream call.
	Timeout int `envconfig:"DOORDASH_TIMEOUT" default:"30"`
}

// CreateRequest describes a delivery. Optional fields are sent only when set.
type CreateRequest struct {
	ExternalDeliveryID string `json:"external_delivery_id" validate:"required"`
	PickupAddress      string `json:"pickup_address" validate:"required"`
	PickupBusinessName string `json:"pickup_business_name" validate:"required"`
	PickupPhoneNumber  string `json:"pickup_phone_number" validate:"required"`
	DropoffAddress     string `json:"dropoff_address" validate:"required"`
	DropoffPhoneNumber string `json:"dropoff_phone_number" validate:"required"`

	PickupInstructions       string `json:"pickup_instructions,omitempty"`
	PickupReferenceTag       string `json:"pickup_reference_tag,omitempty"`
	DropoffBusinessName      string `json:"dropoff_business_name,omitempty"`
	DropoffInstructions      string `json:"dropoff_instructions,omitempty"`
	DropoffContactGivenName  string `json:"dropoff_contact_given_name,omitempty"`
	DropoffContactFamilyName string `json:"dropoff_contact_family_name,omitempty"`
	// OrderValue and Tip are in cents.
	OrderValue int    `json:"order_value,omitempty" validate:"gte=0"`
	Tip        int    `json:"tip,omitempty" validate:"gte=0"`
	Currency   string `json:"currency,omitempty"`
}

func (r CreateRequest) Validate() error {
	return validate.Struct(r)
}

// Delivery is the provider's delivery object, kept verbatim so no field is lost.
type Delivery struct {
	raw []byte
}

func newDelivery(body []byte) *Delivery {
	return &Delivery{raw: append([]byte(nil), body...)}
}

func (d *Delivery) ExternalDeliveryID() string {
	return d.Get("external_delivery_id").String()
}

func (d *Delivery) Status() string {
	return d.Get("delivery_status").String()
}

func (d *Delivery) TrackingURL() string {
	return d.Get("tracking_url").String()
}

// Fee is the provider fee in cents, 0 when absent.
func (d *Delivery) Fee() int64 {
	return d.Get("fee").Int()
}

// Get reads any field by gjson path.
func (d *Delivery) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

func (d *Delivery) MarshalJSON() ([]byte, error) {
	if len(d.raw) == 0 || !gjson.ValidBytes(d.raw) {
		return []byte("{}"), nil
	}
	return d.raw, nil
}

func (d *Delivery) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return errors.New("delivery: invalid JSON payload")
	}
	d.raw = append(d.raw[:0], b...)
	return nil
}
