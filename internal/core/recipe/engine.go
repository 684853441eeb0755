package recipe

// Engine 把關鍵字表與各元件綁在一起，供語料載入與選擇器共用
type Engine struct {
	Tables     *Tables
	Classifier *Classifier
	Estimator  *WeightEstimator
	Scorer     *Scorer
}

// NewEngine 以關鍵字表建立引擎；tables 為 nil 時使用內建表
func NewEngine(tables *Tables) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	estimator := NewWeightEstimator(tables)
	return &Engine{
		Tables:     tables,
		Classifier: NewClassifier(tables),
		Estimator:  estimator,
		Scorer:     NewScorer(tables, estimator),
	}
}
