package shopclient

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPincode = errors.New("please enter a valid 6-digit pincode")
	ErrInvalidMobile  = errors.New("please enter a valid 10-digit mobile number")
)

var (
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	mobileRe  = regexp.MustCompile(`^[0-9]{10}$`)
	slugRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// ProductID derives a stable cart identity from the page and the product
// name. The same page and name always produce the same id, and identical
// names on different pages stay distinct, so repeat adds accumulate on one
// line item.
func ProductID(pageID, name string) string {
	return slug(pageID) + "-" + slug(name)
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CleanPrice strips everything but digits and the decimal point from raw
// page text, mirroring the server's normalization.
func CleanPrice(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ValidatePincode(pincode string) error {
	if !pincodeRe.MatchString(pincode) {
		return ErrInvalidPincode
	}
	return nil
}

func ValidateMobile(mobile string) error {
	if !mobileRe.MatchString(mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// ValidateShipping checks pincode before mobile, matching the server's
// validation order so both sides report the same first failure.
func ValidateShipping(s Shipping) error {
	if err := ValidatePincode(s.Pincode); err != nil {
		return err
	}
	return ValidateMobile(s.Mobile)
}
