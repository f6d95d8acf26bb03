package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Simplici0/dealdesk/internal/pricing"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("delivery_fee", func(fl validator.FieldLevel) bool {
		switch fl.Field().Float() {
		case 0, 100, 135, 150:
			return true
		}
		return false
	})
	return v
}

type marginPickRequest struct {
	Target        pricing.MarginTarget `json:"target" validate:"oneof=50 49 48 47"`
	OriginalPrice pricing.Amount       `json:"originalPrice" validate:"gte=0"`
}

type itemRequest struct {
	RawPrice    pricing.Amount     `json:"rawPrice" validate:"gte=0"`
	Quantity    pricing.Quantity   `json:"quantity" validate:"gte=0"`
	LandingCost pricing.Amount     `json:"landingCost" validate:"gte=0"`
	MarginPick  *marginPickRequest `json:"marginPick,omitempty"`
}

func (r itemRequest) toLineItem() pricing.LineItem {
	item := pricing.LineItem{
		RawPrice:    r.RawPrice,
		Quantity:    r.Quantity,
		LandingCost: r.LandingCost,
	}
	if r.MarginPick != nil {
		item.Pick = &pricing.MarginPick{Target: r.MarginPick.Target, OriginalPrice: r.MarginPick.OriginalPrice}
	}
	return item
}

type settingsRequest struct {
	Mode        pricing.Mode      `json:"mode" validate:"required,oneof=quote margin_check otd"`
	SalePercent int               `json:"salePercent" validate:"oneof=30 35 40"`
	NoTaxPromo  bool              `json:"noTaxPromo"`
	PriceType   pricing.PriceType `json:"priceType" validate:"required,oneof=sale tag"`
	DeliveryFee pricing.Amount    `json:"deliveryFee" validate:"delivery_fee"`
	OtdOffer    pricing.Amount    `json:"otdOffer"`
}

func (r settingsRequest) toSettings() pricing.DealSettings {
	return pricing.DealSettings{
		Mode:        r.Mode,
		SalePercent: r.SalePercent,
		NoTaxPromo:  r.NoTaxPromo,
		PriceType:   r.PriceType,
		DeliveryFee: r.DeliveryFee,
		OtdOffer:    r.OtdOffer,
	}
}

type dealRequest struct {
	Items    []itemRequest   `json:"items" validate:"max=50,dive"`
	Settings settingsRequest `json:"settings"`
}

func (r dealRequest) lineItems() []pricing.LineItem {
	items := make([]pricing.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toLineItem())
	}
	return items
}

type saveDealRequest struct {
	dealRequest
	Title string `json:"title" validate:"max=120"`
	Notes string `json:"notes" validate:"max=2000"`
}

type marginTargetRequest struct {
	Item   itemRequest          `json:"item"`
	Target pricing.MarginTarget `json:"target" validate:"oneof=50 49 48 47"`
}

type setPriceRequest struct {
	Item     itemRequest    `json:"item"`
	RawPrice pricing.Amount `json:"rawPrice" validate:"gte=0"`
}

func decodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return newAPIError(codeValidation, "invalid request body").withDetails(map[string]any{"error": err.Error()}).wrap(err)
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *apiError {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return newAPIError(codeValidation, "validation failed").wrap(err)
	}

	details := map[string]string{}
	for _, fieldErr := range errs {
		details[fieldPath(fieldErr.Namespace())] = validationMessage(fieldErr)
	}
	return newAPIError(codeValidation, "validation failed").withDetails(details)
}

// fieldPath drops the root struct name, e.g. "dealRequest.items[0].rawPrice"
// becomes "items[0].rawPrice".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "delivery_fee":
		return "must be one of 0 100 135 150"
	}
	return "is invalid"
}
