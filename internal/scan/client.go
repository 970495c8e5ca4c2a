package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sahanmw/wrenchworks-backend/pkg/config"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

// Classification is the classifier's verdict on a vehicle image.
type Classification struct {
	LicensePlate string  `json:"license_plate"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Color        string  `json:"color"`
	Confidence   float64 `json:"confidence"`
}

// Classifier calls the external vehicle recognition endpoint.
type Classifier interface {
	Classify(ctx context.Context, imageURL string) (*Classification, error)
}

type httpClassifier struct {
	cfg    config.ScanConfig
	client *http.Client
}

// NewClassifier builds the HTTP classifier client.
func NewClassifier(cfg config.ScanConfig) (Classifier, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("scan base url required")
	}
	return &httpClassifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Classify posts the image reference and decodes the verdict. Failures
// surface as dependency errors; there is no retry.
func (c *httpClassifier) Classify(ctx context.Context, imageURL string) (*Classification, error) {
	payload, err := json.Marshal(map[string]string{"image_url": imageURL})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode scan request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/classify", bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build scan request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call vehicle classifier")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("vehicle classifier returned status %d", resp.StatusCode))
	}

	var result Classification
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode classifier response")
	}
	return &result, nil
}
