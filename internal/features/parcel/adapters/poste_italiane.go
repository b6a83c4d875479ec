package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parcel-tracker/internal/core/logger"
	"parcel-tracker/internal/core/proxy"
	"parcel-tracker/internal/features/parcel/domain"
	"parcel-tracker/internal/features/parcel/format"
	"parcel-tracker/internal/features/parcel/ports"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"go.uber.org/zap"
)

// PosteItalianeAdapter tracks shipments through the Poste Italiane public
// tracking page. The carrier has no open JSON API, so the adapter drives a
// headless browser and hijacks the XHR the page makes to the internal
// tracking backend.
type PosteItalianeAdapter struct {
	pageURL string
	proxy   proxy.Settings
	logger  *zap.Logger
}

var posteItalianeFormat = format.New(`^\d{12,14}$`)

const posteItalianeTimeLayout = "2006-01-02T15:04:05"

// NewPosteItalianeAdapter creates a PosteItalianeAdapter. pageURL must contain
// a %s placeholder for the tracking ID.
func NewPosteItalianeAdapter(pageURL string, proxySettings proxy.Settings) *PosteItalianeAdapter {
	return &PosteItalianeAdapter{
		pageURL: pageURL,
		proxy:   proxySettings,
		logger:  logger.Get(),
	}
}

// Carrier implements ports.DeliveryService.
func (a *PosteItalianeAdapter) Carrier() domain.Carrier { return domain.CarrierPosteItaliane }

// AcceptsFormat reports whether trackingID looks like a Poste Italiane code.
func (a *PosteItalianeAdapter) AcceptsFormat(trackingID string) bool {
	return posteItalianeFormat.Accepts(trackingID) || format.UPU.Accepts(trackingID)
}

// AcceptsPostCode implements ports.DeliveryService.
func (a *PosteItalianeAdapter) AcceptsPostCode() bool { return false }

// RequiresPostCode implements ports.DeliveryService.
func (a *PosteItalianeAdapter) RequiresPostCode() bool { return false }

var posteItalianeStatusTable = map[string]domain.Status{
	"ACCETTATA":      domain.StatusPreadvice,
	"IN TRANSITO":    domain.StatusInTransit,
	"IN DOGANA":      domain.StatusCustoms,
	"IN LAVORAZIONE": domain.StatusInWarehouse,
	"IN GIACENZA":    domain.StatusDeliveryFailure,
	"IN CONSEGNA":    domain.StatusOutForDelivery,
	"CONSEGNATA":     domain.StatusDelivered,
}

// posteItalianeResponse represents the JSON body of the tracking XHR.
type posteItalianeResponse struct {
	ShipmentCode string `json:"codiceSpedizione"`
	Status       string `json:"stato"`
	Movements    []struct {
		Date        string `json:"dataOra"`
		Description string `json:"statoLavorazione"`
		Place       string `json:"luogo"`
	} `json:"listaMovimenti"`
}

// GetParcel loads the tracking page in a headless browser and captures the
// backend response the page fetches.
func (a *PosteItalianeAdapter) GetParcel(ctx context.Context, trackingID, _ string) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	// Chromium cannot take proxy credentials on the command line, so an
	// authenticated upstream goes through a local forwarding proxy.
	var localProxyAddr string
	if a.proxy.HasProxy() && a.proxy.Username != "" && a.proxy.Password != "" {
		forwarder, err := proxy.NewForwardingProxy(a.proxy.FullURL(), "poste.it")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ports.ErrNetwork, err)
		}
		localProxyAddr, err = forwarder.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ports.ErrNetwork, err)
		}
		defer forwarder.Stop()
	} else if a.proxy.HasProxy() {
		localProxyAddr = a.proxy.HostPort()
	}

	a.logger.Debug("Launching browser",
		zap.String("tracking_id", trackingID),
		zap.Bool("proxy_enabled", a.proxy.HasProxy()),
	)

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	if localProxyAddr != "" {
		l = l.Proxy(localProxyAddr)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to launch browser: %v", ports.ErrNetwork, err)
	}

	browser := rod.New().Context(ctx).ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: failed to connect to browser: %v", ports.ErrNetwork, err)
	}
	defer browser.Close()

	page := browser.MustPage(fmt.Sprintf(a.pageURL, trackingID))

	router := page.HijackRequests()
	defer router.MustStop()

	done := make(chan []byte)

	router.MustAdd("*/tracciatura*", func(hctx *rod.Hijack) {
		if err := hctx.LoadResponse(http.DefaultClient, true); err != nil {
			a.logger.Error("Failed to load tracking response", zap.Error(err))
			return
		}
		done <- []byte(hctx.Response.Body())
	})

	go router.Run()

	select {
	case body := <-done:
		return a.parseResponse(body, trackingID)
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: timeout waiting for carrier response: %v", ports.ErrNetwork, ctx.Err())
	}
}

// parseResponse normalizes the captured backend body into a parcel.
func (a *PosteItalianeAdapter) parseResponse(body []byte, trackingID string) (*domain.Parcel, error) {
	var resp posteItalianeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: undecodable carrier response: %v", ports.ErrParcelNonExistent, err)
	}

	if len(resp.Movements) == 0 {
		return nil, fmt.Errorf("%w: no movements reported", ports.ErrParcelNonExistent)
	}

	history := make([]domain.HistoryItem, 0, len(resp.Movements))
	for _, movement := range resp.Movements {
		ts, _ := time.Parse(posteItalianeTimeLayout, movement.Date)

		location := movement.Place
		if location == "" {
			location = domain.UnknownLocation
		}

		history = append(history, domain.HistoryItem{
			Description: movement.Description,
			Timestamp:   ts,
			Location:    location,
		})
	}

	status, ok := posteItalianeStatusTable[resp.Status]
	if !ok {
		status = unknownStatus(domain.CarrierPosteItaliane, resp.Status)
	}

	id := resp.ShipmentCode
	if id == "" {
		id = trackingID
	}

	return &domain.Parcel{
		ID:      id,
		History: history,
		Status:  status,
	}, nil
}
