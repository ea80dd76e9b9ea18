package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Tour images are stored on Cloudinary via signed form uploads.
// Configured with CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
// CLOUDINARY_API_SECRET and optionally CLOUDINARY_FOLDER.

func cloudinarySignature(publicID, timestamp, apiSecret string) string {
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))
}

// UploadBase64Image uploads a data-URL or raw base64 image and returns the
// hosted URL, or an empty string on failure.
func UploadBase64Image(base64ImageSrc string, publicID string) string {
	if base64ImageSrc == "" {
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("cloudinary: missing CLOUDINARY_* env vars, upload skipped")
		return ""
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)
	form.Add("public_id", finalPublicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", cloudinarySignature(finalPublicID, timestamp, apiSecret))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("cloudinary: build upload request: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("cloudinary: upload request failed: %v", err)
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Printf("cloudinary: read upload response: %v", err)
		return ""
	}
	if res.StatusCode != 200 {
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
		log.Printf("cloudinary: parse upload response: %v", err)
		return ""
	}
	if cloudRes.Error.Message != "" {
		log.Printf("cloudinary: upload error: %s", cloudRes.Error.Message)
		return ""
	}

	if cloudRes.SecureURL != "" {
		return cloudRes.SecureURL
	}
	return cloudRes.URL
}

// DeleteImage removes a previously uploaded image, identified by its
// Cloudinary URL. Returns false when the URL is not ours or deletion fails.
func DeleteImage(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return false
	}
	lastPart := parts[len(parts)-1]
	publicID := strings.Split(lastPart, ".")[0]

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Println("cloudinary: missing CLOUDINARY_* env vars, delete skipped")
		return false
	}

	finalPublicID := publicID
	if folder != "" {
		finalPublicID = folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", cloudinarySignature(finalPublicID, timestamp, apiSecret))

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("cloudinary: delete request failed: %v", err)
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return false
	}
	if res.StatusCode != 200 {
		log.Printf("cloudinary: delete failed with status %d: %s", res.StatusCode, string(body))
		return false
	}

	var deleteRes struct {
		Result string `json:"result"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &deleteRes); err != nil {
		return false
	}
	if deleteRes.Error.Message != "" {
		log.Printf("cloudinary: delete error: %s", deleteRes.Error.Message)
		return false
	}
	return deleteRes.Result == "ok"
}
