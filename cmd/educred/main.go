// educred is a one-shot verifier: it runs the full pipeline on a single
// certificate image and prints the verdict as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/config"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/db"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/ocr"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/infra/vision"
	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/usecase"
)

func main() {
	imagePath := flag.String("image", "", "path to the certificate image")
	includeQr := flag.Bool("qr", false, "also verify the embedded QR payload")
	flag.Parse()
	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	directory, err := config.LoadInstitutions(cfg.InstitutionsPath)
	if err != nil {
		log.Fatalf("load institutions: %v", err)
	}

	store, err := db.NewStore(cfg)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	certificates := db.NewCertificateRepository(store.DB)

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
	qr, err := usecase.NewQrVerifier(vision.NewRegionExtractor(), vision.NewQrDecoder(), certificates)
	if err != nil {
		log.Fatalf("qr verifier: %v", err)
	}
	verify, err := usecase.NewVerifyCertificate(
		certificates,
		usecase.NewFuzzyRecordMatcher(usecase.DefaultMatcherConfig()),
		forgery,
		qr,
		nil,
	)
	if err != nil {
		log.Fatalf("verify usecase: %v", err)
	}

	contents, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatalf("read image: %v", err)
	}
	img, err := vision.DecodeImage(contents)
	if err != nil {
		log.Fatalf("decode image: %v", err)
	}
	defer img.Close()

	fields, err := ocr.NewFieldExtractor(ocr.NewTesseractRecognizer(cfg.TesseractLang), directory)
	if err != nil {
		log.Fatalf("field extractor: %v", err)
	}
	extracted, err := fields.Extract(ctx, contents)
	if err != nil {
		log.Fatalf("ocr: %v", err)
	}

	verdict, err := verify.Verify(ctx, usecase.VerifyRequest{
		Image:     img,
		Extracted: extracted,
		IncludeQr: *includeQr,
	})
	if err != nil {
		log.Fatalf("verify: %v", err)
	}

	out, err := json.MarshalIndent(struct {
		Extracted any `json:"extracted_info"`
		Verdict   any `json:"verdict"`
	}{Extracted: extracted, Verdict: verdict}, "", "  ")
	if err != nil {
		log.Fatalf("encode verdict: %v", err)
	}
	fmt.Println(string(out))
	if !verdict.IsValid {
		os.Exit(1)
	}
}
