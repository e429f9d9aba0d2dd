package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finplanner/iht-engine/internal/api/request"
)

func validRequest() request.CalculationRequest {
	return request.CalculationRequest{
		DeathDate: "2024-09-01",
		Profile: request.EstateProfile{
			OwnedByLongTermResident: true,
			Assets: []request.AssetEntry{
				{ID: "a1", Description: "savings", Value: decimal.NewFromInt(500000)},
			},
		},
		Gifts: []request.Gift{{
			ID:            "g1",
			Date:          "2021-06-01",
			Amount:        decimal.NewFromInt(10000),
			RecipientType: "individual",
			RecipientID:   "r1",
			Relationship:  "child",
		}},
		Trusts: []request.Trust{{
			ID:           "t1",
			Type:         "discretionary",
			CreationDate: "2020-01-01",
			EntryValue:   decimal.NewFromInt(400000),
			CurrentValue: decimal.NewFromInt(450000),
		}},
		ReliefAssets: []request.ReliefAsset{{
			ID:              "ra1",
			Category:        "unquotedShares",
			Value:           decimal.NewFromInt(100000),
			OwnershipMonths: 36,
		}},
	}
}

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	msg, ok := vErr.Fields[field]
	if !ok {
		t.Fatalf("expected an error for field %q, got %v", field, vErr.Fields)
	}
	return msg
}

// TestValidateCalculation tests the field-by-field request validation.
//
// WHY: The validator is the API's contract for 400 responses: every defect
// must be keyed by its field path, and all defects must be reported in one
// pass.
func TestValidateCalculation(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		if err := ValidateCalculation(validRequest()); err != nil {
			t.Errorf("ValidateCalculation() returned unexpected error: %v", err)
		}
	})

	t.Run("missing death date", func(t *testing.T) {
		req := validRequest()
		req.DeathDate = ""
		fieldError(t, ValidateCalculation(req), "deathDate")
	})

	t.Run("malformed death date", func(t *testing.T) {
		req := validRequest()
		req.DeathDate = "01/09/2024"
		fieldError(t, ValidateCalculation(req), "deathDate")
	})

	t.Run("negative asset value", func(t *testing.T) {
		req := validRequest()
		req.Profile.Assets[0].Value = decimal.NewFromInt(-1)
		fieldError(t, ValidateCalculation(req), "profile.assets[0].value")
	})

	t.Run("gift after the death date", func(t *testing.T) {
		req := validRequest()
		req.Gifts[0].Date = "2025-01-01"
		fieldError(t, ValidateCalculation(req), "gifts[0].date")
	})

	t.Run("duplicate gift ids", func(t *testing.T) {
		req := validRequest()
		second := req.Gifts[0]
		second.Date = "2022-06-01"
		req.Gifts = append(req.Gifts, second)
		fieldError(t, ValidateCalculation(req), "gifts[1].id")
	})

	t.Run("missing gift id", func(t *testing.T) {
		req := validRequest()
		req.Gifts[0].ID = " "
		fieldError(t, ValidateCalculation(req), "gifts[0].id")
	})

	t.Run("invalid enums", func(t *testing.T) {
		req := validRequest()
		req.Gifts[0].RecipientType = "company"
		req.Gifts[0].Relationship = "acquaintance"
		req.Trusts[0].Type = "constructive"
		req.ReliefAssets[0].Category = "speedboat"

		err := ValidateCalculation(req)
		fieldError(t, err, "gifts[0].recipientType")
		fieldError(t, err, "gifts[0].relationship")
		fieldError(t, err, "trusts[0].type")
		fieldError(t, err, "reliefAssets[0].category")
	})

	t.Run("negative allowance percentages", func(t *testing.T) {
		req := validRequest()
		req.Allowances.TransferredNRBPercent = decimal.NewFromInt(-10)
		fieldError(t, ValidateCalculation(req), "allowances.transferredNrbPercent")
	})

	t.Run("malformed trust exit", func(t *testing.T) {
		req := validRequest()
		req.Trusts[0].Exits = []request.TrustExit{
			{Date: "soon", Amount: decimal.NewFromInt(-5)},
		}

		err := ValidateCalculation(req)
		fieldError(t, err, "trusts[0].exits[0].date")
		fieldError(t, err, "trusts[0].exits[0].amount")
	})

	t.Run("all defects reported at once", func(t *testing.T) {
		req := validRequest()
		req.DeathDate = ""
		req.Gifts[0].Amount = decimal.NewFromInt(-1)
		req.ReliefAssets[0].OwnershipMonths = -6

		var vErr *Error
		if !errors.As(ValidateCalculation(req), &vErr) {
			t.Fatal("expected *validation.Error")
		}
		if len(vErr.Fields) != 3 {
			t.Errorf("expected 3 field errors, got %d: %v", len(vErr.Fields), vErr.Fields)
		}
	})
}
