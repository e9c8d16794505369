package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// block is the ledger service's view of a block.
type block struct {
	Index     int    `json:"index"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"`
	CreatorID string `json:"creator_id"`
	TimeStamp string `json:"timestamp"`
	Nonce     uint64 `json:"nonce"`
	Tx        struct {
		Sender   string          `json:"sender"`
		Receiver string          `json:"receiver"`
		Amount   decimal.Decimal `json:"amount"`
	} `json:"tx"`
}

type difficulty struct {
	Difficulty    uint   `json:"difficulty"`
	MaxDifficulty uint   `json:"max_difficulty"`
	Algorithm     string `json:"algorithm"`
}

type validation struct {
	Valid  bool   `json:"valid"`
	Blocks int    `json:"blocks"`
	Error  string `json:"error"`
}

// client is shared by the commands. Mining happens inside the request so
// the timeout needs to cover it.
var client = http.Client{
	Timeout: 2 * time.Minute,
}

// send is a helper function to send an HTTP request to the ledger service.
func send(method string, url string, dataSend any, dataRecv any) error {
	var req *http.Request

	switch {
	case dataSend != nil:
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		req, err = http.NewRequest(method, url, bytes.NewReader(data))
		if err != nil {
			return err
		}

	default:
		var err error
		req, err = http.NewRequest(method, url, nil)
		if err != nil {
			return err
		}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		var er struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.Unmarshal(msg, &er); err != nil || er.Error == "" {
			return errors.New(string(msg))
		}

		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %v", er.Error, er.Fields)
		}
		return errors.New(er.Error)
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
