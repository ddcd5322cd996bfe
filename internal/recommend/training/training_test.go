// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package training

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/config"
	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/normalize"
)

func example(skills []string, reqs []string, label float64) Example {
	return Example{
		Profile: normalize.NormalizedProfile{
			ID:     "p",
			Skills: skills,
			Experience: []normalize.NormalizedExperience{
				{Title: "engineer", Months: 24, Skills: skills},
			},
			Education: []normalize.NormalizedEducation{
				{Degree: "bachelor", Level: normalize.LevelBachelor, Grade: 3.5},
			},
		},
		Job: normalize.NormalizedJob{
			ID:           "j",
			Title:        "engineer",
			Requirements: reqs,
			Industry:     "software",
		},
		Label: label,
	}
}

func TestBuildVocabulary(t *testing.T) {
	examples := []Example{
		example([]string{"go", "sql"}, []string{"go", "kubernetes"}, 1.0),
		example([]string{"python"}, []string{"python"}, 0.6),
	}

	v := BuildVocabulary(examples)

	wantSkills := []string{"go", "kubernetes", "python", "sql"}
	if len(v.Skills) != len(wantSkills) {
		t.Fatalf("Skills = %v, want %v", v.Skills, wantSkills)
	}
	for i, s := range wantSkills {
		if v.Skills[i] != s {
			t.Errorf("Skills[%d] = %q, want %q (sorted layout)", i, v.Skills[i], s)
		}
	}
	if len(v.Titles) != 1 || v.Titles[0] != "engineer" {
		t.Errorf("Titles = %v, want [engineer]", v.Titles)
	}
	if len(v.Industries) != 1 || v.Industries[0] != "software" {
		t.Errorf("Industries = %v, want [software]", v.Industries)
	}
}

func TestVectorizeWidthAndBounds(t *testing.T) {
	examples := []Example{
		example([]string{"go", "sql"}, []string{"go", "kubernetes"}, 1.0),
	}
	v := BuildVocabulary(examples)

	if want := v.TokenCount() + 4; v.FeatureWidth() != want {
		t.Errorf("FeatureWidth() = %d, want %d", v.FeatureWidth(), want)
	}

	vec, err := v.Vectorize(examples[0].Profile, examples[0].Job)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if len(vec) != v.FeatureWidth() {
		t.Fatalf("vector width = %d, want %d", len(vec), v.FeatureWidth())
	}
	for i, x := range vec {
		if x < 0 || x > 1 {
			t.Errorf("vec[%d] = %v outside [0,1]", i, x)
		}
	}
}

func TestVectorizeUnseenTokensContributeZero(t *testing.T) {
	v := BuildVocabulary([]Example{
		example([]string{"go"}, []string{"go"}, 1.0),
	})

	vec, err := v.Vectorize(
		normalize.NormalizedProfile{Skills: []string{"haskell"}},
		normalize.NormalizedJob{Requirements: []string{"erlang"}, Industry: "aviation"},
	)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	for i := 0; i < v.TokenCount(); i++ {
		if vec[i] != 0 {
			t.Errorf("vocab slot %d = %v, want 0 for unseen tokens", i, vec[i])
		}
	}
}

func TestVectorizeEmptyVocabulary(t *testing.T) {
	v := &Vocabulary{}
	_, err := v.Vectorize(normalize.NormalizedProfile{}, normalize.NormalizedJob{})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Vectorize on empty vocabulary = %v, want ErrInvalidConfiguration", err)
	}
}

func TestVectorizeUnindexedVocabulary(t *testing.T) {
	// A vocabulary assembled without BuildVocabulary has no lookup maps.
	// Vectorize must refuse it rather than build them, so concurrent
	// callers never observe a mutation.
	v := &Vocabulary{Skills: []string{"go", "sql"}}
	_, err := v.Vectorize(normalize.NormalizedProfile{Skills: []string{"go"}}, normalize.NormalizedJob{})
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Vectorize on unindexed vocabulary = %v, want ErrInvalidConfiguration", err)
	}
	if v.skillIdx != nil {
		t.Error("Vectorize mutated the vocabulary indexes")
	}
}

func TestNetworkLearnsSeparableLabels(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	net, err := NewNetwork(2, []int{8, 4}, rng)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}

	var inputs [][]float64
	var labels []float64
	for i := 0; i < 60; i++ {
		if i%2 == 0 {
			inputs = append(inputs, []float64{1, 0})
			labels = append(labels, 0.9)
		} else {
			inputs = append(inputs, []float64{0, 1})
			labels = append(labels, 0.1)
		}
	}

	stats, err := net.Train(context.Background(), inputs, labels, Options{
		Epochs:          200,
		BatchSize:       8,
		LearningRate:    0.5,
		ValidationSplit: 0.2,
	}, rng)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if stats.Epochs != 200 {
		t.Errorf("Epochs = %d, want 200", stats.Epochs)
	}

	high := net.Predict([]float64{1, 0})
	low := net.Predict([]float64{0, 1})
	if high <= low {
		t.Errorf("Predict(high)=%v not above Predict(low)=%v", high, low)
	}
	if high < 0 || high > 1 || low < 0 || low > 1 {
		t.Errorf("predictions outside [0,1]: %v, %v", high, low)
	}
}

func TestNetworkTrainCancellation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	net, err := NewNetwork(2, []int{4}, rng)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = net.Train(ctx, [][]float64{{1, 0}, {0, 1}}, []float64{1, 0}, Options{
		Epochs: 10, BatchSize: 2, LearningRate: 0.1,
	}, rng)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Train with canceled ctx = %v, want context.Canceled", err)
	}
}

func TestNetworkRejectsBadOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewNetwork(0, []int{4}, rng); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewNetwork(0 inputs) = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewNetwork(2, nil, rng); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("NewNetwork(no hidden) = %v, want ErrInvalidConfiguration", err)
	}

	net, err := NewNetwork(2, []int{4}, rng)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	_, err = net.Train(context.Background(), nil, nil, Options{Epochs: 1, BatchSize: 1, LearningRate: 0.1}, rng)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Train with no samples = %v, want ErrInvalidConfiguration", err)
	}
}

func TestArtifactStoreRoundTrip(t *testing.T) {
	store, err := NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewArtifactStore: %v", err)
	}

	if _, _, err := store.LoadActive(); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("LoadActive on empty store = %v, want ErrModelNotFound", err)
	}

	rng := rand.New(rand.NewSource(3))
	vocab := BuildVocabulary([]Example{example([]string{"go"}, []string{"go"}, 1.0)})
	net, err := NewNetwork(vocab.FeatureWidth(), []int{4}, rng)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}

	version, err := store.Save(&Model{Vocab: vocab, Net: net}, Metadata{
		FeatureWidth: vocab.FeatureWidth(),
		Metrics:      Metrics{DataPoints: 1},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if version != 1 {
		t.Errorf("first version = %d, want 1", version)
	}

	model, meta, err := store.LoadActive()
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if meta.Version != 1 || meta.FeatureWidth != vocab.FeatureWidth() {
		t.Errorf("metadata = %+v", meta)
	}
	if meta.Checksum == "" {
		t.Error("checksum not recorded")
	}

	// The reloaded model must be able to vectorize and predict.
	vec, err := model.Vocab.Vectorize(example([]string{"go"}, []string{"go"}, 1.0).Profile,
		example([]string{"go"}, []string{"go"}, 1.0).Job)
	if err != nil {
		t.Fatalf("Vectorize after reload: %v", err)
	}
	pred := model.Net.Predict(vec)
	if pred < 0 || pred > 1 {
		t.Errorf("Predict after reload = %v, want [0,1]", pred)
	}

	// A second save becomes the new active version.
	v2, err := store.Save(&Model{Vocab: vocab, Net: net}, Metadata{FeatureWidth: vocab.FeatureWidth()})
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if v2 != 2 {
		t.Errorf("second version = %d, want 2", v2)
	}
	_, meta2, err := store.LoadActive()
	if err != nil || meta2.Version != 2 {
		t.Errorf("LoadActive after second save = (%+v, %v), want version 2", meta2, err)
	}
}

// pipelineSource is an in-memory DataSource for pipeline tests.
type pipelineSource struct {
	records  []models.OutcomeRecord
	profiles map[string]*models.Profile
	jobs     map[string]*models.JobPosting
}

func (s *pipelineSource) ListOutcomeRecords(ctx context.Context) ([]models.OutcomeRecord, error) {
	return s.records, nil
}

func (s *pipelineSource) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	return p, nil
}

func (s *pipelineSource) GetJob(ctx context.Context, id string) (*models.JobPosting, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, errors.New("job not found")
	}
	return j, nil
}

func testTrainingConfig() config.TrainingConfig {
	return config.TrainingConfig{
		Epochs:          5,
		BatchSize:       8,
		LearningRate:    0.01,
		ValidationSplit: 0.2,
		Regularization:  0.1,
		HiddenLayers:    []int{8, 4},
		MinRecords:      10,
		SyntheticTarget: 30,
	}
}

func TestPipelineAugmentsSparseData(t *testing.T) {
	src := &pipelineSource{
		records: []models.OutcomeRecord{
			{ID: "o1", ProfileID: "p1", JobID: "j1", Hired: true},
			{ID: "o2", ProfileID: "p1", JobID: "j2", Interviewed: true},
			{ID: "o3", ProfileID: "p1", JobID: "j3", Applied: true},
		},
		profiles: map[string]*models.Profile{
			"p1": {
				ID:     "p1",
				Skills: []models.Skill{{Name: "Go"}, {Name: "SQL"}},
				Experience: []models.Experience{
					{Title: "Engineer", StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), Current: true, Skills: []string{"Go"}},
				},
			},
		},
		jobs: map[string]*models.JobPosting{
			"j1": {ID: "j1", Title: "Backend Engineer", Requirements: []string{"Go", "SQL"}, Company: models.Company{Industry: "SaaS"}},
			"j2": {ID: "j2", Title: "Data Engineer", Requirements: []string{"SQL", "Python"}, Company: models.Company{Industry: "FinTech"}},
			"j3": {ID: "j3", Title: "Platform Engineer", Requirements: []string{"Kubernetes"}, Company: models.Company{Industry: "SaaS"}},
		},
	}

	artifacts, err := NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewArtifactStore: %v", err)
	}

	p := NewPipeline(src, artifacts, testTrainingConfig(), zerolog.Nop(), 11)
	metrics, version, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if metrics.DataPoints < 3 {
		t.Errorf("DataPoints = %d, want >= 3", metrics.DataPoints)
	}
	if metrics.SyntheticPoints != metrics.DataPoints-3 {
		t.Errorf("SyntheticPoints = %d with %d data points, real records must survive augmentation",
			metrics.SyntheticPoints, metrics.DataPoints)
	}
	if metrics.DataPoints != 30 {
		t.Errorf("DataPoints = %d, want synthetic target 30", metrics.DataPoints)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}

	model, meta, err := artifacts.LoadActive()
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if meta.FeatureWidth <= 0 {
		t.Errorf("FeatureWidth = %d, want > 0", meta.FeatureWidth)
	}
	if model.Vocab.TokenCount() == 0 {
		t.Error("persisted vocabulary is empty")
	}
}

func TestPipelineNoRecords(t *testing.T) {
	src := &pipelineSource{}
	artifacts, err := NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewArtifactStore: %v", err)
	}

	p := NewPipeline(src, artifacts, testTrainingConfig(), zerolog.Nop(), 1)
	_, _, err = p.Run(context.Background())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Run with no records = %v, want ErrInsufficientData", err)
	}
}

func TestPipelineSkipsUnresolvableRecords(t *testing.T) {
	src := &pipelineSource{
		records: []models.OutcomeRecord{
			{ID: "o1", ProfileID: "ghost", JobID: "j1", Hired: true},
		},
		profiles: map[string]*models.Profile{},
		jobs:     map[string]*models.JobPosting{"j1": {ID: "j1"}},
	}
	artifacts, err := NewArtifactStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewArtifactStore: %v", err)
	}

	p := NewPipeline(src, artifacts, testTrainingConfig(), zerolog.Nop(), 1)
	_, _, err = p.Run(context.Background())
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Run with only unresolvable records = %v, want ErrInsufficientData", err)
	}
}
