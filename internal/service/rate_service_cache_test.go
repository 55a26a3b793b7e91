package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ratehistory/internal/provider"
	"ratehistory/internal/rates"
)

// upstream serves whatever document it currently holds.
type upstream struct {
	body  string
	calls int
}

func (u *upstream) Fetch(context.Context) ([]byte, error) {
	u.calls++
	return []byte(u.body), nil
}

func (u *upstream) Name() string { return "bsi" }

func sheetsXML(dates ...string) string {
	var b strings.Builder
	b.WriteString(`<tecajnice xmlns="http://www.bsi.si">`)
	for _, d := range dates {
		b.WriteString(`<tecajnica datum="` + d + `"><tecaj oznaka="USD" sifra="840">1.1720</tecaj></tecajnica>`)
	}
	b.WriteString(`</tecajnice>`)
	return b.String()
}

func TestRefresh_ReadsThroughSourceCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	up := &upstream{body: sheetsXML("2018-07-10", "2018-07-12")}
	newService := func() *RateService {
		cached := provider.NewCachedSource(up, rdb, time.Hour)
		return NewRateService(provider.NewLoader(cached), nil, nil, zap.NewNop().Sugar())
	}
	ctx := context.Background()

	svc := newService()
	_, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2018-07-12", rates.FormatDate(svc.Status(ctx).Last))

	// The upstream publishes a new sheet while the cached copy is still fresh.
	up.body = sheetsXML("2018-07-10", "2018-07-12", "2018-07-13")

	restarted := newService()
	require.NoError(t, restarted.Bootstrap(ctx))
	assert.Equal(t, "2018-07-12", rates.FormatDate(restarted.Status(ctx).Last), "bootstrap serves the cached copy")
	assert.Equal(t, 1, up.calls)

	res, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2018-07-13", rates.FormatDate(res.Last))
	assert.Equal(t, "2018-07-13", rates.FormatDate(svc.Status(ctx).Last))
	assert.Equal(t, 2, up.calls)

	// The refreshed copy replaced the cached one.
	require.NoError(t, restarted.Bootstrap(ctx))
	assert.Equal(t, "2018-07-13", rates.FormatDate(restarted.Status(ctx).Last))
	assert.Equal(t, 2, up.calls)
}
