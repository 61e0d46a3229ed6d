package application

import (
	"context"
	"testing"
)

func TestHealthService(t *testing.T) {
	svc := NewHealthService("s3")
	ctx := context.Background()

	if !svc.IsHealthy(ctx) {
		t.Error("IsHealthy = false, want true")
	}
	if !svc.IsReady(ctx) {
		t.Error("IsReady = false, want true")
	}

	details := svc.GetHealthDetails(ctx)
	if !details.Healthy || !details.Ready {
		t.Errorf("details = %+v", details)
	}
	if details.Components["archive"] != "s3" {
		t.Errorf("archive component = %q, want s3", details.Components["archive"])
	}
}
