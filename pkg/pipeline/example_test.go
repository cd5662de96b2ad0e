package pipeline_test

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/cloudweights/pkg/cloud"
	"github.com/matzehuels/cloudweights/pkg/pipeline"
	"github.com/matzehuels/cloudweights/pkg/source"
)

func ExampleRunner_Execute() {
	src := source.NewStatic(source.NewCatalog(map[string][]cloud.RawCount{
		"abc.txt": {{Term: "a", Count: 10}, {Term: "b", Count: 5}, {Term: "c", Count: 0}},
	}))
	runner := pipeline.NewRunner(src, nil)

	result, err := runner.Execute(context.Background(), pipeline.Options{CorpusID: "abc.txt"})
	if err != nil {
		panic(err)
	}
	data, _ := json.Marshal(result.Request)
	fmt.Println(string(data))
	// Output:
	// {"list":[["a",200],["b",50],["c",0]],"gridSize":1,"minSize":0}
}
