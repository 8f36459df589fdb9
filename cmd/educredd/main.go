package main

import (
	"context"
	"log"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/config"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/cache"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/db"
	httpinfra "github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/http"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/ocr"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/policyopa"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/vision"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/usecase"
)

func main() {
	cfg := config.FromEnv()
	ctx := context.Background()

	directory, err := config.LoadInstitutions(cfg.InstitutionsPath)
	if err != nil {
		log.Fatalf("load institutions: %v", err)
	}

	store, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	if store.DB != nil {
		if err := store.Migrate(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if err := store.SeedSampleRecords(ctx); err != nil {
			log.Printf("seed sample records: %v", err)
		}
	}

	resolver, err := usecase.NewInstitutionProfileResolver(directory)
	if err != nil {
		log.Fatalf("resolver: %v", err)
	}
	assets, err := vision.NewFileAssetStore(cfg.AssetsDir, directory)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}
	forgery, err := usecase.NewForgeryEngine(
		resolver,
		assets,
		vision.NewRegionExtractor(),
		vision.NewOrbSealMatcher(),
		vision.NewTemplateSignatureMatcher(),
	)
	if err != nil {
		log.Fatalf("forgery engine: %v", err)
	}

	certificates := db.NewCertificateRepository(store.DB)
	qr, err := usecase.NewQrVerifier(vision.NewRegionExtractor(), vision.NewQrDecoder(), certificates)
	if err != nil {
		log.Fatalf("qr verifier: %v", err)
	}

	var policy usecase.DecisionPolicy
	if cfg.PolicyBundlePath != "" {
		engine, err := policyopa.NewEngineFromBundlePath(ctx, cfg.PolicyBundlePath, "decision-bundle")
		if err != nil {
			log.Fatalf("policy bundle: %v", err)
		}
		log.Printf("decision policy bundle loaded, hash %s", engine.BundleHash())
		policy = engine
	}

	auditRepo := db.NewAuditEventRepository(store.DB)
	verify, err := usecase.NewVerifyCertificate(
		certificates,
		usecase.NewFuzzyRecordMatcher(matcherConfig(cfg)),
		forgery,
		qr,
		policy,
	)
	if err != nil {
		log.Fatalf("verify usecase: %v", err)
	}
	if store.DB != nil {
		emitter, err := usecase.NewAuditEmitter(auditRepo)
		if err != nil {
			log.Fatalf("audit emitter: %v", err)
		}
		verify.Audit = emitter
	}

	fields, err := ocr.NewFieldExtractor(ocr.NewTesseractRecognizer(cfg.TesseractLang), directory)
	if err != nil {
		log.Fatalf("field extractor: %v", err)
	}

	deps := httpinfra.ServerDeps{
		Verify: verify,
		Fields: fields,
		Qr:     qr,
		Audit:  auditRepo,
		Decode: vision.DecodeImage,
	}
	if cfg.RedisAddr != "" {
		verdictCache, err := cache.NewRedisVerdictCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("verdict cache: %v", err)
		}
		defer verdictCache.Close()
		deps.Cache = verdictCache
	}

	srv := httpinfra.NewServerWithDeps(cfg, store, deps)
	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func matcherConfig(cfg config.Config) usecase.MatcherConfig {
	mc := usecase.DefaultMatcherConfig()
	if cfg.FieldThreshold > 0 {
		mc.FieldThreshold = cfg.FieldThreshold
	}
	if cfg.CertWeight+cfg.NameWeight+cfg.InstWeight+cfg.YearWeight > 0 {
		mc.CertWeight = cfg.CertWeight
		mc.NameWeight = cfg.NameWeight
		mc.InstWeight = cfg.InstWeight
		mc.YearWeight = cfg.YearWeight
	}
	return mc
}
