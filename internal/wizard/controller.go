package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agonglab/ssgs-web/internal/market"
)

// Upstream-section errors. Handlers translate these into a silent redirect
// to the producing step.
var (
	ErrMissingIdea     = errors.New("wizard: no idea submitted")
	ErrMissingAnalysis = errors.New("wizard: analysis not completed")
	ErrMissingContent  = errors.New("wizard: ai content not completed")
)

// runTimeout bounds one async step end to end. Individual calls are already
// capped by the client timeout.
const runTimeout = 3 * time.Minute

// sampleComments simulate SNS reactions fed into the sentiment endpoint.
var sampleComments = []string{
	"와 정말 맛있어 보인다!",
	"이거 꼭 가봐야겠어요",
	"가격이 좀 비싸네요",
	"인테리어 진짜 예쁘다",
	"위치가 좀 애매한 것 같은데",
	"오픈하면 바로 가볼게요",
}

// Controller owns the wizard flow: it validates step entry, launches async
// runs, and merges results into the session bundle. One controller serves
// all sessions.
type Controller struct {
	store  *Store
	client *market.Client
	city   string
	log    *zap.Logger
	sleep  func(time.Duration)
}

func NewController(store *Store, client *market.Client, city string, log *zap.Logger) *Controller {
	return &Controller{store: store, client: client, city: city, log: log, sleep: time.Sleep}
}

// Bundle returns the session's current wizard context.
func (c *Controller) Bundle(sid string) Bundle { return c.store.Bundle(sid) }

// SetIdea stores a validated idea and invalidates every downstream section.
func (c *Controller) SetIdea(sid string, idea Idea) { c.store.SetIdea(sid, idea) }

// EditPromotion overwrites the generated promotion text with the user's
// edit, invalidating a completed SNS test.
func (c *Controller) EditPromotion(sid, text string) bool {
	return c.store.EditPromotion(sid, text)
}

// Drop discards all wizard state for the session.
func (c *Controller) Drop(sid string) { c.store.Drop(sid) }

// Progress reports the visible state of a step's run.
func (c *Controller) Progress(sid string, step Step) Progress { return c.store.progress(sid, step) }

// StartAnalysis launches the three-call analysis run. Calling it while a run
// is live is a no-op, so the loading page can be reloaded safely.
func (c *Controller) StartAnalysis(sid string) error { return c.start(sid, StepAnalysis, false) }

// StartAIContent launches text+image generation followed by the save call.
func (c *Controller) StartAIContent(sid string) error { return c.start(sid, StepAIContent, false) }

// StartUpload launches the simulated SNS upload and sentiment collection.
func (c *Controller) StartUpload(sid string) error { return c.start(sid, StepUpload, false) }

// Retry re-runs a single step, superseding any previous run while keeping
// all upstream sections intact.
func (c *Controller) Retry(sid string, step Step) error { return c.start(sid, step, true) }

func (c *Controller) start(sid string, step Step, force bool) error {
	b := c.store.Bundle(sid)
	if b.Idea == nil {
		return ErrMissingIdea
	}
	switch step {
	case StepAIContent:
		if b.Analysis == nil {
			return ErrMissingAnalysis
		}
	case StepUpload:
		if b.AIContent == nil {
			return ErrMissingContent
		}
	}
	if !force && c.store.running(sid, step) {
		return nil
	}
	id, gen := c.store.begin(sid, step)
	c.log.Info("run started",
		zap.String("step", string(step)),
		zap.String("run_id", id),
		zap.String("session_id", sid))

	switch step {
	case StepAnalysis:
		go c.runAnalysis(sid, gen, *b.Idea)
	case StepAIContent:
		go c.runAIContent(sid, gen, *b.Idea)
	case StepUpload:
		go c.runUpload(sid, gen, *b.AIContent)
	}
	return nil
}

func (c *Controller) runAnalysis(sid string, gen uint64, idea Idea) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	c.store.update(sid, StepAnalysis, gen, 5, "상권 데이터 수집 중")

	var (
		region   market.DistrictReport
		district market.CategoryReport
		score    market.ScoreReport
		done     atomic.Int32
	)
	bump := func(phase string) {
		c.store.update(sid, StepAnalysis, gen, int(done.Add(1))*30, phase)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.client.DistrictAnalysis(gctx, idea.ZoneCode)
		if err != nil {
			return err
		}
		region = r
		bump("상권 분석 완료")
		return nil
	})
	g.Go(func() error {
		r, err := c.client.DistrictCategoryAnalysis(gctx, idea.ZoneCode, idea.CategoryCode)
		if err != nil {
			return err
		}
		district = r
		bump("업종 분석 완료")
		return nil
	})
	g.Go(func() error {
		r, err := c.client.ScoreAnalysis(gctx, idea.ZoneCode, idea.CategoryCode)
		if err != nil {
			return err
		}
		score = r
		bump("점수 산출 완료")
		return nil
	})
	if err := g.Wait(); err != nil {
		c.log.Warn("analysis run failed", zap.String("session_id", sid), zap.Error(err))
		c.store.fail(sid, StepAnalysis, gen, "분석 중 오류가 발생했습니다. 다시 시도해주세요.")
		return
	}

	// The zone summary enriches the report but never fails the step.
	var summary *market.AreaSummary
	c.store.update(sid, StepAnalysis, gen, 95, "요약 정리 중")
	if sum, err := c.client.ZoneSummary(ctx, idea.ZoneCode); err == nil {
		summary = &sum
	} else {
		c.log.Warn("zone summary skipped", zap.Error(err))
	}

	c.store.finish(sid, StepAnalysis, gen, func(b *Bundle) {
		b.Analysis = &Analysis{
			Region:      region,
			District:    district,
			Score:       score,
			Summary:     summary,
			CompletedAt: time.Now().UTC(),
		}
	})
}

func (c *Controller) runAIContent(sid string, gen uint64, idea Idea) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	req := idea.GenerateRequest(c.city)
	c.store.update(sid, StepAIContent, gen, 10, "홍보문구 생성 중")

	var (
		promotion string
		images    []string
		done      atomic.Int32
	)
	bump := func(phase string) {
		c.store.update(sid, StepAIContent, gen, 10+int(done.Add(1))*35, phase)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := c.client.GenerateText(gctx, req)
		if err != nil {
			return err
		}
		promotion = text
		bump("홍보문구 생성 완료")
		return nil
	})
	g.Go(func() error {
		imgs, err := c.client.GenerateImages(gctx, req)
		if err != nil {
			return err
		}
		images = imgs
		bump("홍보 이미지 생성 완료")
		return nil
	})
	if err := g.Wait(); err != nil {
		c.log.Warn("ai generation failed, serving placeholder content",
			zap.String("session_id", sid), zap.Error(err))
		c.finishDegraded(sid, gen, idea)
		return
	}

	c.store.update(sid, StepAIContent, gen, 90, "홍보물 저장 중")
	saveResult, err := c.client.SavePromotion(ctx, promotion, images)
	if err != nil {
		c.log.Warn("promotion save failed, serving placeholder content",
			zap.String("session_id", sid), zap.Error(err))
		c.finishDegraded(sid, gen, idea)
		return
	}

	c.store.finish(sid, StepAIContent, gen, func(b *Bundle) {
		b.AIContent = &AIContent{
			Promotion:   promotion,
			Images:      images,
			SaveResult:  saveResult,
			PromotionID: promotionIDFrom(saveResult),
			GeneratedAt: time.Now().UTC(),
		}
		b.Upload = nil
	})
}

// finishDegraded completes the content step with clearly placeholder content
// so the flow can continue; the UI flags it.
func (c *Controller) finishDegraded(sid string, gen uint64, idea Idea) {
	c.store.finish(sid, StepAIContent, gen, func(b *Bundle) {
		b.AIContent = &AIContent{
			Promotion:   placeholderPromotion(idea),
			Images:      placeholderImages(),
			Degraded:    true,
			GeneratedAt: time.Now().UTC(),
		}
		b.Upload = nil
	})
}

func (c *Controller) runUpload(sid string, gen uint64, content AIContent) {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	c.store.update(sid, StepUpload, gen, 10, "게시물 준비 중")
	c.sleep(800 * time.Millisecond)

	c.store.update(sid, StepUpload, gen, 45, "업로드 중")
	c.sleep(1200 * time.Millisecond)

	if content.PromotionID != "" {
		if err := c.client.UploadPost(ctx, content.PromotionID); err != nil {
			c.log.Warn("instagram upload skipped", zap.Error(err))
		}
	}

	c.store.update(sid, StepUpload, gen, 80, "반응 수집 중")
	var sentiment *market.SentimentReport
	if rep, err := c.client.AnalyzeSentiment(ctx, sampleComments); err == nil {
		sentiment = &rep
	} else {
		c.log.Warn("sentiment analysis skipped", zap.Error(err))
	}

	c.store.finish(sid, StepUpload, gen, func(b *Bundle) {
		now := time.Now()
		b.Upload = &Upload{
			PostID:     fmt.Sprintf("p_%d", now.UnixMilli()),
			UploadedAt: now.UTC(),
			Sentiment:  sentiment,
		}
	})
}

// promotionIDFrom treats a purely numeric save result as the stored
// promotion's identifier; anything else is a human-readable message.
func promotionIDFrom(saveResult string) string {
	s := strings.TrimSpace(saveResult)
	if s == "" {
		return ""
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return s
}

func placeholderPromotion(idea Idea) string {
	return fmt.Sprintf("[예시 문구] %s %s의 새로운 %s 전문점! %s 콘셉트와 %s 키워드로 준비 중입니다. "+
		"AI 생성에 실패하여 예시 콘텐츠를 표시하고 있습니다.",
		idea.Gu, idea.Dong, idea.Menu, idea.Concept, idea.Keywords)
}

func placeholderImages() []string {
	return []string{
		"/assets/img/placeholder_post_1.svg",
		"/assets/img/placeholder_post_2.svg",
		"/assets/img/placeholder_post_3.svg",
	}
}
