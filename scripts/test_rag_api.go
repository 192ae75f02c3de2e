package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

var userToken = os.Getenv("API_TEST_TOKEN")

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // ingestion can be slow, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte, key string) string {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		if v, ok := data[key].(string); ok {
			return v
		}
	}
	return ""
}

func main() {
	if userToken == "" {
		color.Red("API_TEST_TOKEN is not set")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting Ingestion & RAG Chat API Test\n")

	// 1. Create a term
	color.Yellow("\n[1] Create Term")
	resp, body, err := sendRequest("POST", "/term/v1", userToken, map[string]interface{}{
		"title":       "Fall 2026",
		"description": "API smoke test term",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	termID := dataField(body, "id")
	fmt.Printf("Term ID: %s\n", termID)

	// 2. Create a subject under the term
	color.Yellow("\n[2] Create Subject")
	resp, body, err = sendRequest("POST", "/subject/v1", userToken, map[string]interface{}{
		"title":   "Linear Algebra",
		"color":   "#4f46e5",
		"term_id": termID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	subjectID := dataField(body, "id")
	fmt.Printf("Subject ID: %s\n", subjectID)

	// 3. Ingest a link resource
	color.Yellow("\n[3] Add Link Resource")
	resp, body, err = sendRequest("POST", "/resource/v1/link", userToken, map[string]interface{}{
		"subject_id": subjectID,
		"url":        "https://example.com/eigenvalues",
		"title":      "Eigenvalues and Eigenvectors",
		"content":    "An eigenvector of a square matrix is a nonzero vector that changes only by a scalar factor when the matrix is applied. That scalar factor is the eigenvalue.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var ingestResp map[string]interface{}
	json.Unmarshal(body, &ingestResp)
	prettyPrint(ingestResp)

	// 4. Ask a grounded question
	color.Yellow("\n[4] Chat: Grounded Question")
	resp, body, err = sendRequest("POST", "/chat/v1/ask", userToken, map[string]interface{}{
		"subject_id": subjectID,
		"question":   "What is an eigenvector?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var chatResp map[string]interface{}
		json.Unmarshal(body, &chatResp)
		if data, ok := chatResp["data"].(map[string]interface{}); ok {
			fmt.Printf("Answer: %s\n", data["answer"])
			if sources, ok := data["sources"].([]interface{}); ok {
				fmt.Printf("Sources: %d\n", len(sources))
			}
		} else {
			prettyPrint(chatResp)
		}
	}

	// 5. Ask something the notes cannot answer (fallback path)
	color.Yellow("\n[5] Chat: Out-of-Notes Question")
	resp, body, err = sendRequest("POST", "/chat/v1/ask", userToken, map[string]interface{}{
		"subject_id": subjectID,
		"question":   "Who won the 1998 World Cup?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var chatResp map[string]interface{}
		json.Unmarshal(body, &chatResp)
		if data, ok := chatResp["data"].(map[string]interface{}); ok {
			fmt.Printf("Answer: %s\n", data["answer"])
		} else {
			prettyPrint(chatResp)
		}
	}

	// 6. Cleanup: delete the term (cascades subjects and resources)
	if termID != "" {
		color.Yellow("\n[6] Cleanup: Delete Term")
		resp, body, err = sendRequest("DELETE", "/term/v1/"+termID, userToken, nil)
		if err != nil {
			color.Red("Failed: %v", err)
		} else {
			color.Green("Status: %s", resp.Status)
			var deleteResp map[string]interface{}
			json.Unmarshal(body, &deleteResp)
			prettyPrint(deleteResp)
		}
	} else {
		color.Red("\n[SKIP] Cleanup skipped (no term ID returned)")
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
