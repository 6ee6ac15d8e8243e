package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Cloudinary is reached over its plain HTTP upload API; only the resulting
// secure URL is persisted on our side.

type cloudinaryConfig struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

var cloudinary cloudinaryConfig

func InitializeCloudinary(cloudName, apiKey, apiSecret, folder string) {
	cloudinary = cloudinaryConfig{cloudName: cloudName, apiKey: apiKey, apiSecret: apiSecret, folder: folder}
	if cloudName == "" {
		log.Println("Cloudinary credentials not set, image uploads will fail")
	}
}

// UploadBase64Image sends a base64 data URL (or raw base64) to Cloudinary and
// returns the hosted URL, or "" on any failure.
func UploadBase64Image(base64ImageSrc string, publicID string) string {
	if base64ImageSrc == "" {
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	if cloudinary.cloudName == "" || cloudinary.apiKey == "" || cloudinary.apiSecret == "" {
		log.Println("cloudinary: missing credentials")
		return ""
	}

	finalPublicID := publicID
	if cloudinary.folder != "" {
		finalPublicID = cloudinary.folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", cloudinary.apiKey)
	if finalPublicID != "" {
		form.Add("public_id", finalPublicID)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)

	// Signed upload: SHA1 over the signed params + secret
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, cloudinary.apiSecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudinary.cloudName + "/image/upload"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("cloudinary: build request: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("cloudinary: upload request: %v", err)
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("cloudinary: read response: %v", err)
		return ""
	}

	if res.StatusCode != http.StatusOK {
		log.Printf("cloudinary: upload failed with status %d: %s", res.StatusCode, string(body))
		return ""
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		log.Printf("cloudinary: parse response: %v", err)
		return ""
	}
	if cloudRes.Error.Message != "" {
		log.Printf("cloudinary: %s", cloudRes.Error.Message)
		return ""
	}

	if cloudRes.SecureURL != "" {
		return cloudRes.SecureURL
	}
	return cloudRes.URL
}

// DeleteImage removes a previously uploaded image by its URL. Best-effort;
// callers may ignore the result.
func DeleteImage(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return false
	}
	publicID := strings.Split(parts[len(parts)-1], ".")[0]

	if cloudinary.cloudName == "" || cloudinary.apiKey == "" || cloudinary.apiSecret == "" {
		return false
	}

	finalPublicID := publicID
	if cloudinary.folder != "" {
		finalPublicID = cloudinary.folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, cloudinary.apiSecret)

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", cloudinary.apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudinary.cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil || res.StatusCode != http.StatusOK {
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return false
	}
	return deleteRes.Result == "ok"
}
