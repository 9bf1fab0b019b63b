package evaluator

// Fitness weighting: 60% calibration, 40% task accuracy. Calibration is
// the primary objective (agents must know what they know); the accuracy
// share is the grounding constraint that keeps an always-hedge strategy
// from dominating.
const (
	calibrationWeight = 0.6
	taskWeight        = 0.4
)

// ScoreFitness scores one evaluation from prediction calibration and
// task performance. Returns (raw_calibration, prediction_accuracy,
// fitness).
//
// Both calibration terms are Brier-style quadratic penalties: raw uses
// the oracle's reported confidence, prediction_accuracy applies the
// genome's confidence bias first. Correct answers earn a task score
// scaled by difficulty.
func ScoreFitness(predictedConfidence float64, isCorrect bool, confidenceBias, taskDifficulty float64) (rawCalibration, predictionAccuracy, fitness float64) {
	outcome := 0.0
	if isCorrect {
		outcome = 1.0
	}

	rawCalibration = 1.0 - (predictedConfidence-outcome)*(predictedConfidence-outcome)

	adjusted := clamp01(predictedConfidence + confidenceBias)
	predictionAccuracy = 1.0 - (adjusted-outcome)*(adjusted-outcome)

	taskScore := outcome * (0.5 + 0.5*taskDifficulty)

	fitness = calibrationWeight*predictionAccuracy + taskWeight*taskScore
	return rawCalibration, predictionAccuracy, fitness
}
