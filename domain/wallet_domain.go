package domain

import (
	"errors"
)

var (
	MessageSuccessWalletLink = "wallet pass link created successfully"
	MessageFailedWalletLink  = "failed to create wallet pass link"

	ErrWalletCredentialsMissing = errors.New("wallet service account credentials not found")
	ErrReceiptNotFound          = errors.New("receipt not found")
)

type (
	WalletLinkRequest struct {
		FileName  string `json:"file_name" validate:"required"`
		SendEmail bool   `json:"send_email"`
	}

	WalletLinkResponse struct {
		SaveURL  string `json:"save_url"`
		ObjectID string `json:"object_id"`
		Emailed  bool   `json:"emailed"`
	}
)
