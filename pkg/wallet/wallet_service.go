package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Goutham-IITJ/Project-Raseed/domain"
	"github.com/Goutham-IITJ/Project-Raseed/entities"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"github.com/Goutham-IITJ/Project-Raseed/internal/utils/mailing"
	"github.com/Goutham-IITJ/Project-Raseed/pkg/receipt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
)

const (
	walletAPIBase     = "https://walletobjects.googleapis.com/walletobjects/v1"
	walletSaveURL     = "https://pay.google.com/gp/v/save/"
	walletScope       = "https://www.googleapis.com/auth/wallet_object.issuer"
	oauthTokenURL     = "https://oauth2.googleapis.com/token"
	receiptClassSlug  = "raseed_receipt_v1"
	itemsBodyMaxChars = 600
	cardColor         = "#4285F4"
	logoURL           = "https://cdn-icons-png.flaticon.com/512/2534/2534863.png"
)

type (
	WalletService interface {
		CreatePassLink(ctx context.Context, req domain.WalletLinkRequest, userEmail string) (domain.WalletLinkResponse, error)
	}

	serviceAccount struct {
		ClientEmail string `json:"client_email"`
		PrivateKey  string `json:"private_key"`
	}

	walletService struct {
		receiptService receipt.ReceiptService
		issuerID       string
		keyFile        string
		httpClient     *http.Client
		classEnsured   bool
	}
)

func NewWalletService(receiptService receipt.ReceiptService) WalletService {
	return &walletService{
		receiptService: receiptService,
		issuerID:       utils.GetConfig("WALLET_ISSUER_ID"),
		keyFile:        utils.GetConfig("WALLET_KEY_FILE"),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// CreatePassLink mints a signed save-to-wallet URL for one stored receipt and
// optionally emails it to the user.
func (s *walletService) CreatePassLink(ctx context.Context, req domain.WalletLinkRequest, userEmail string) (domain.WalletLinkResponse, error) {
	res, err := s.receiptService.GetReceipt(ctx, req.FileName, userEmail)
	if err != nil {
		return domain.WalletLinkResponse{}, err
	}
	if res.Invoice == nil {
		return domain.WalletLinkResponse{}, domain.ErrReceiptNotFound
	}

	account, err := s.loadServiceAccount()
	if err != nil {
		return domain.WalletLinkResponse{}, err
	}

	// Class creation is best-effort: a pass object referencing a class that
	// already exists saves fine even when the ensure call is rejected.
	if err := s.ensureClass(ctx, account); err != nil {
		log.Warnf("wallet class ensure failed: %v", err)
	}

	objectID := fmt.Sprintf("%s.receipt_%d_%d", s.issuerID, res.Invoice.ID, time.Now().Unix())
	passObject := s.buildPassObject(objectID, res.Invoice, res.Items)

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(account.PrivateKey))
	if err != nil {
		return domain.WalletLinkResponse{}, err
	}

	claims := jwt.MapClaims{
		"iss": account.ClientEmail,
		"aud": "google",
		"typ": "savetowallet",
		"iat": time.Now().Unix(),
		"payload": map[string]any{
			"genericObjects": []map[string]any{passObject},
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return domain.WalletLinkResponse{}, err
	}

	saveURL := walletSaveURL + token

	emailed := false
	if req.SendEmail {
		body := fmt.Sprintf(
			"<p>Your receipt pass for <b>%s</b> is ready.</p><p><a href=%q>Save to Google Wallet</a></p>",
			req.FileName, saveURL,
		)
		if err := mailing.SendMail(userEmail, "Your Raseed receipt pass", body); err != nil {
			log.Warnf("failed to email wallet link: %v", err)
		} else {
			emailed = true
		}
	}

	return domain.WalletLinkResponse{
		SaveURL:  saveURL,
		ObjectID: objectID,
		Emailed:  emailed,
	}, nil
}

func (s *walletService) buildPassObject(objectID string, invoice *entities.Invoice, items []entities.LineItem) map[string]any {
	merchant := "Retailer"
	if invoice.SellerInformation != nil && *invoice.SellerInformation != "" {
		merchant = *invoice.SellerInformation
	}
	dateStr := "Today"
	if invoice.InvoiceDate != nil {
		dateStr = invoice.InvoiceDate.Format("2006-01-02")
	}
	category := "Expense"
	if invoice.Category != nil && *invoice.Category != "" {
		category = *invoice.Category
	}
	total := invoice.GrandTotal.StringFixed(2)

	return map[string]any{
		"id":      objectID,
		"classId": fmt.Sprintf("%s.%s", s.issuerID, receiptClassSlug),
		"logo": map[string]any{
			"sourceUri":          map[string]any{"uri": logoURL},
			"contentDescription": localized("Logo"),
		},
		"cardTitle":          localized(merchant),
		"header":             localized("Total: $" + total),
		"hexBackgroundColor": cardColor,
		"textModulesData": []map[string]any{
			{"id": "amount", "header": "Total", "body": "$" + total},
			{"id": "date", "header": "Date", "body": dateStr},
			{"id": "category", "header": "Category", "body": category},
			{"id": "items", "header": "Itemized List", "body": ItemsBody(items)},
		},
	}
}

// ItemsBody renders the itemized text module, truncated so the pass body
// never exceeds the Wallet limit.
func ItemsBody(items []entities.LineItem) string {
	var b strings.Builder
	for _, item := range items {
		desc := ""
		if item.ProductService != nil {
			desc = *item.ProductService
		}
		fmt.Fprintf(&b, "%dx %s ($%s)\n", item.Quantity, desc, item.UnitPrice.StringFixed(2))
	}
	body := b.String()
	if body == "" {
		return "No item details available."
	}
	if len(body) > itemsBodyMaxChars {
		// cut on a rune boundary so a split product name never emits
		// invalid UTF-8 into the pass JSON
		cut := itemsBodyMaxChars
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		return body[:cut]
	}
	return body
}

func localized(value string) map[string]any {
	return map[string]any{
		"defaultValue": map[string]any{"language": "en-US", "value": value},
	}
}

func (s *walletService) loadServiceAccount() (*serviceAccount, error) {
	data, err := os.ReadFile(s.keyFile)
	if err != nil {
		return nil, domain.ErrWalletCredentialsMissing
	}
	var account serviceAccount
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, domain.ErrWalletCredentialsMissing
	}
	if account.ClientEmail == "" || account.PrivateKey == "" {
		return nil, domain.ErrWalletCredentialsMissing
	}
	return &account, nil
}

// ensureClass creates the shared generic pass class the first time it is
// needed. Subsequent calls in the same process are skipped.
func (s *walletService) ensureClass(ctx context.Context, account *serviceAccount) error {
	if s.classEnsured {
		return nil
	}

	token, err := s.accessToken(ctx, account)
	if err != nil {
		return err
	}

	classID := fmt.Sprintf("%s.%s", s.issuerID, receiptClassSlug)
	getReq, err := http.NewRequestWithContext(ctx, http.MethodGet, walletAPIBase+"/genericClass/"+classID, nil)
	if err != nil {
		return err
	}
	getReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(getReq)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		s.classEnsured = true
		return nil
	}

	newClass := map[string]any{
		"id": classID,
		"classTemplateInfo": map[string]any{
			"cardBarcodeSectionDetails": map[string]any{"sectionHeader": "Scan Receipt"},
			"cardTemplateOverride": map[string]any{
				"cardRowTemplateInfos": []map[string]any{{
					"twoItems": map[string]any{
						"startItem": map[string]any{"firstValue": map[string]any{
							"fields": []map[string]any{{"fieldPath": "object.textModulesData['amount']"}},
						}},
						"endItem": map[string]any{"firstValue": map[string]any{
							"fields": []map[string]any{{"fieldPath": "object.textModulesData['date']"}},
						}},
					},
				}},
			},
		},
		"imageModulesData": []map[string]any{{
			"mainImage": map[string]any{"sourceUri": map[string]any{"uri": logoURL}},
			"id":        "logo_module",
		}},
	}

	body, err := json.Marshal(newClass)
	if err != nil {
		return err
	}

	postReq, err := http.NewRequestWithContext(ctx, http.MethodPost, walletAPIBase+"/genericClass", bytes.NewReader(body))
	if err != nil {
		return err
	}
	postReq.Header.Set("Authorization", "Bearer "+token)
	postReq.Header.Set("Content-Type", "application/json")

	postResp, err := s.httpClient.Do(postReq)
	if err != nil {
		return err
	}
	defer postResp.Body.Close()
	if postResp.StatusCode >= 300 && postResp.StatusCode != http.StatusConflict {
		return fmt.Errorf("wallet class create failed: %s", postResp.Status)
	}

	s.classEnsured = true
	return nil
}

// accessToken performs the two-legged service-account OAuth exchange.
func (s *walletService) accessToken(ctx context.Context, account *serviceAccount) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(account.PrivateKey))
	if err != nil {
		return "", err
	}

	now := time.Now()
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"iss":   account.ClientEmail,
		"scope": walletScope,
		"aud":   oauthTokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}).SignedString(key)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, oauthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("wallet oauth exchange failed: %s", resp.Status)
	}
	return tokenResp.AccessToken, nil
}
