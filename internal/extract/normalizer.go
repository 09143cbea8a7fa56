// Package extract collapses the heterogeneous upstream claim records into the
// strongly-typed PartyFact the decision engine operates on. Upstream data is
// OCR and XML/JSON output with inconsistent key spellings, Arabic-Indic
// digits, percentage strings and "not identified" placeholders; all of that
// noise is absorbed here, in one place.
package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/refdata"
	domainerrors "github.com/tech920/motor-claim-decision-api-sub000/pkg/domain-errors"
)

// Record is one raw upstream party record. Keys vary by source system; the
// normalizer resolves each fact through an ordered alias list.
type Record map[string]any

// Normalizer produces PartyFact values from raw records. The vehicle table is
// optional; without it the vehicle-demanded license type is only taken from
// the record itself.
type Normalizer struct {
	vehicles *refdata.Table
}

func NewNormalizer(vehicles *refdata.Table) *Normalizer {
	return &Normalizer{vehicles: vehicles}
}

// Alias lists, ordered by how often each spelling occurs upstream. First
// present key wins.
var (
	partyIDKeys        = []string{"party_id", "Party_ID", "ID", "id", "PartyId"}
	liabilityKeys      = []string{"liability", "Liability", "Liability_Percentage", "liability_percent", "Liability_Percent"}
	insurerNameKeys    = []string{"insurer_name", "Insurance_Company", "insurance_company", "Company_Name", "company"}
	insurerEnglishKeys = []string{"insurer_english_name", "Insurance_Company_English", "Company_Name_English", "english_name"}
	recoveryKeys       = []string{"recovery", "Recovery", "Recovery_Flag", "recovery_flag"}
	violationKeys      = []string{"violation_text", "Act_Violation", "act_violation", "Violation_Description", "violation"}
	licenseReqKeys     = []string{"license_type_requested", "License_Type", "license_type", "Requested_License_Type"}
	licenseVehicleKeys = []string{"license_type_from_vehicle", "License_Type_From_Make_Model", "license_type_from_make_model"}
	licenseExpiryKeys  = []string{"license_expiry_date", "License_Expiry_Date", "license_expiry", "Expiry_Date"}
	policyholderKeys   = []string{"policyholder_id", "Policyholder_ID", "Insured_ID", "insured_id"}
	vehicleOwnerKeys   = []string{"vehicle_owner_id", "Vehicle_Owner_ID", "Owner_ID", "owner_id"}
	vehicleMakeKeys    = []string{"vehicle_make", "Vehicle_Make", "Make", "make"}
	vehicleModelKeys   = []string{"vehicle_model", "Vehicle_Model", "Model", "model"}
)

// Party normalizes one raw record. party_id and liability are mandatory;
// everything else degrades to absent when missing or marked unidentified —
// values are never synthesized.
func (n *Normalizer) Party(record Record) (models.PartyFact, error) {
	partyID := digitsOnly(stringField(record, partyIDKeys))
	if partyID == "" {
		return models.PartyFact{}, domainerrors.New(domainerrors.CodeBadRequest,
			"party record has no identifier")
	}

	liability, err := liabilityField(record)
	if err != nil {
		return models.PartyFact{}, domainerrors.Wrap(err, domainerrors.CodeBadRequest,
			"party "+partyID)
	}

	fact := models.PartyFact{
		PartyID:                partyID,
		Liability:              liability,
		InsurerName:            stringField(record, insurerNameKeys),
		InsurerEnglishName:     stringField(record, insurerEnglishKeys),
		RecoveryFlag:           recoveryField(record),
		ViolationText:          stringField(record, violationKeys),
		LicenseTypeRequested:   stringField(record, licenseReqKeys),
		LicenseTypeFromVehicle: stringField(record, licenseVehicleKeys),
		PolicyholderID:         digitsOnly(stringField(record, policyholderKeys)),
		VehicleOwnerID:         digitsOnly(stringField(record, vehicleOwnerKeys)),
	}

	if fact.LicenseTypeFromVehicle == "" && n.vehicles != nil {
		mk := stringField(record, vehicleMakeKeys)
		md := stringField(record, vehicleModelKeys)
		if lt, ok := n.vehicles.LicenseType(mk, md); ok {
			fact.LicenseTypeFromVehicle = lt
		}
	}

	if raw := stringField(record, licenseExpiryKeys); raw != "" {
		if ts, ok := parseExpiry(raw); ok {
			fact.LicenseExpiry = &ts
		}
	}

	return fact, nil
}

// Bundle normalizes every record of one accident in order.
func (n *Normalizer) Bundle(claimID string, records []Record) ([]models.PartyFact, error) {
	facts := make([]models.PartyFact, 0, len(records))
	for i, record := range records {
		fact, err := n.Party(record)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeBadRequest,
				"claim "+claimID+": record "+strconv.Itoa(i))
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

// stringField resolves the first present alias to a cleaned string.
// Unidentified markers collapse to the empty string.
func stringField(record Record, keys []string) string {
	for _, key := range keys {
		v, ok := record[key]
		if !ok {
			continue
		}
		s := strings.TrimSpace(toString(v))
		if s == "" || isUnidentified(s) {
			return ""
		}
		return s
	}
	return ""
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

var unidentifiedMarkers = []string{
	"not identified", "not identify", "unidentified", "unknown", "n/a",
	"غير محدد", "غير معروف",
}

func isUnidentified(s string) bool {
	lowered := strings.ToLower(s)
	for _, m := range unidentifiedMarkers {
		if lowered == m {
			return true
		}
	}
	return false
}

// liabilityField accepts numeric and string forms: 75, 75.0, "75", "75%",
// "75 %", and Arabic-Indic digits. Values outside 0–100 are rejected.
func liabilityField(record Record) (int, error) {
	for _, key := range liabilityKeys {
		v, ok := record[key]
		if !ok {
			continue
		}
		switch x := v.(type) {
		case float64:
			return validLiability(int(x))
		case int:
			return validLiability(x)
		case string:
			s := latinDigits(strings.TrimSpace(x))
			s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
			if s == "" || isUnidentified(s) {
				return 0, domainerrors.New(domainerrors.CodeBadRequest, "liability unidentified")
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return 0, domainerrors.Newf(domainerrors.CodeBadRequest, "liability %q not numeric", x)
			}
			return validLiability(n)
		}
	}
	return 0, domainerrors.New(domainerrors.CodeBadRequest, "liability missing")
}

func validLiability(n int) (int, error) {
	if n < 0 || n > 100 {
		return 0, domainerrors.Newf(domainerrors.CodeBadRequest, "liability %d out of range", n)
	}
	return n, nil
}

// recoveryField maps the bilingual yes/no spellings onto the tri-state flag.
// Anything unrecognized stays unknown.
func recoveryField(record Record) models.RecoveryFlag {
	for _, key := range recoveryKeys {
		v, ok := record[key]
		if !ok {
			continue
		}
		if b, isBool := v.(bool); isBool {
			if b {
				return models.RecoveryYes
			}
			return models.RecoveryNo
		}
		switch strings.ToLower(strings.TrimSpace(toString(v))) {
		case "true", "yes", "y", "1", "نعم":
			return models.RecoveryYes
		case "false", "no", "n", "0", "لا":
			return models.RecoveryNo
		}
		return models.RecoveryUnknown
	}
	return models.RecoveryUnknown
}

// expiryLayouts covers the date shapes observed across the upstream sources.
var expiryLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"02.01.2006",
}

func parseExpiry(raw string) (time.Time, bool) {
	s := latinDigits(strings.TrimSpace(raw))
	for _, layout := range expiryLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// latinDigits translates Arabic-Indic (٠-٩) and Eastern Arabic-Indic (۰-۹)
// digits to ASCII.
func latinDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		}
		return r
	}, s)
}

// digitsOnly strips everything but ASCII digits, after digit translation.
// Identifiers arrive with stray separators and OCR artifacts.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range latinDigits(s) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
