package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// ForgeryEngine combines profile resolution, region extraction, and both
// visual matchers into one verdict. All failures after profile
// resolution are captured in the verdict with OverallAuthentic=false
// rather than propagated; institution resolution failure is fatal to the
// call, since without a profile there is nothing to compare against.
type ForgeryEngine struct {
	Resolver   *InstitutionProfileResolver
	Assets     AssetStore
	Regions    RegionExtractor
	Seals      SealMatcher
	Signatures SignatureMatcher
}

func NewForgeryEngine(resolver *InstitutionProfileResolver, assets AssetStore, regions RegionExtractor, seals SealMatcher, signatures SignatureMatcher) (*ForgeryEngine, error) {
	if resolver == nil || assets == nil || regions == nil || seals == nil || signatures == nil {
		return nil, errors.New("forgery engine requires resolver, asset store, region extractor and both matchers")
	}
	return &ForgeryEngine{
		Resolver:   resolver,
		Assets:     assets,
		Regions:    regions,
		Seals:      seals,
		Signatures: signatures,
	}, nil
}

// Evaluate produces the visual-authentication verdict for one image.
// Threshold comparisons are inclusive: a score exactly at a profile
// threshold counts as authentic.
func (e *ForgeryEngine) Evaluate(ctx context.Context, cert domain.Image, institutionNameRaw string) (domain.ForgeryVerdict, error) {
	profile, err := e.Resolver.Resolve(institutionNameRaw)
	if err != nil {
		return domain.ForgeryVerdict{}, err
	}

	verdict := domain.ForgeryVerdict{
		InstitutionCode:    profile.Code,
		SealThreshold:      profile.SealThreshold,
		SignatureThreshold: profile.SignatureThreshold,
	}

	sealScore, err := e.scoreSeal(cert, profile)
	if err != nil {
		verdict.Diagnostic = err.Error()
		return verdict, nil
	}
	signatureScore, err := e.scoreSignature(cert, profile)
	if err != nil {
		verdict.Diagnostic = err.Error()
		return verdict, nil
	}

	verdict.SealScore = sealScore
	verdict.SignatureScore = signatureScore
	verdict.SealAuthentic = sealScore >= profile.SealThreshold
	verdict.SignatureAuthentic = signatureScore >= profile.SignatureThreshold
	verdict.OverallAuthentic = verdict.SealAuthentic && verdict.SignatureAuthentic
	return verdict, nil
}

func (e *ForgeryEngine) scoreSeal(cert domain.Image, profile domain.InstitutionProfile) (float64, error) {
	reference, err := e.Assets.ReferenceSeal(profile.Code)
	if err != nil {
		return 0, fmt.Errorf("seal reference for %s: %w", profile.Code, err)
	}
	defer reference.Close()

	region, err := e.Regions.Extract(cert, profile.SealROI)
	if err != nil {
		return 0, fmt.Errorf("extract seal region for %s: %w", profile.Code, err)
	}
	defer region.Close()

	score, err := e.Seals.Similarity(region, reference)
	if err != nil {
		return 0, fmt.Errorf("seal similarity for %s: %w", profile.Code, err)
	}
	return score, nil
}

func (e *ForgeryEngine) scoreSignature(cert domain.Image, profile domain.InstitutionProfile) (float64, error) {
	reference, err := e.Assets.ReferenceSignature(profile.Code)
	if err != nil {
		return 0, fmt.Errorf("signature reference for %s: %w", profile.Code, err)
	}
	defer reference.Close()

	region, err := e.Regions.Extract(cert, profile.SignatureROI)
	if err != nil {
		return 0, fmt.Errorf("extract signature region for %s: %w", profile.Code, err)
	}
	defer region.Close()

	score, err := e.Signatures.Similarity(region, reference)
	if err != nil {
		return 0, fmt.Errorf("signature similarity for %s: %w", profile.Code, err)
	}
	return score, nil
}
