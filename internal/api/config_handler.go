package api

import (
	"encoding/json"
	"net/http"
	"time"

	"cargo-charter/charterdesk/internal/common"
	"cargo-charter/charterdesk/internal/constants"
	"cargo-charter/charterdesk/internal/logging"
)

// GetAppConfigHandler handles GET /api/v1/admin/config
func GetAppConfigHandler(configSvc *common.AppConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		values, err := configSvc.GetAllConfigValues(r.Context())
		if err != nil {
			logging.Error("config load failed", "error", err.Error())
			common.RespondError(w, initTime, nil, "Failed to load configuration", http.StatusInternalServerError)
			return
		}

		data := AppConfigData{
			AllowedKeys: configSvc.ListPossibleKeys(),
			Values:      values,
		}
		common.RespondSuccess(w, initTime, "Configuration fetched", data)
	}
}

// SetAppConfigHandler handles POST /api/v1/admin/config
func SetAppConfigHandler(configSvc *common.AppConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req SetAppConfigRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, nil, "Invalid request body", http.StatusBadRequest)
			return
		}

		if !common.IsValidAppConfigKey(req.Key) {
			common.RespondError(w, initTime, nil,
				constants.GetErrorMessage(constants.ErrCodeConfigKeyUnknown), http.StatusBadRequest)
			return
		}

		values, err := configSvc.SetConfig(r.Context(), req.Key, req.Value)
		if err != nil {
			logging.Error("config update failed", "key", req.Key, "error", err.Error())
			common.RespondError(w, initTime, nil, "Failed to store configuration", http.StatusInternalServerError)
			return
		}

		data := AppConfigData{
			AllowedKeys: configSvc.ListPossibleKeys(),
			Values:      values,
		}
		common.RespondSuccess(w, initTime, "Configuration updated", data)
	}
}

// Request/Response types

type SetAppConfigRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type AppConfigData struct {
	AllowedKeys []string          `json:"allowed_keys"`
	Values      map[string]string `json:"values"`
}
