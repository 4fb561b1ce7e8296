package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/elastic/go-elasticsearch/v8"
	"io"
	"net/http"
)

var ES *elasticsearch.Client

func IndexCourse(course interface{}, id uint) error {
	data, _ := json.Marshal(course)
	res, err := ES.Index(
		"courses",
		bytes.NewReader(data),
		ES.Index.WithDocumentID(fmt.Sprint(id)),
		ES.Index.WithRefresh("true"),
	)
	if err != nil {
		fmt.Println("Ошибка индексации:", err)
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		fmt.Println("Ошибка ответа от ES:", res.String())
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

func DeleteCourseFromIndex(id uint) error {
	res, err := ES.Delete("courses", fmt.Sprint(id), ES.Delete.WithRefresh("true"))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

func SrchCour(query string) ([]map[string]interface{}, error) {
	var buf bytes.Buffer
	srchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"TitleRu": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"TitleEn": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
				},
			},
		},
	}
	json.NewEncoder(&buf).Encode(srchQuery)
	res, err := ES.Search(
		ES.Search.WithIndex("courses"),
		ES.Search.WithBody(&buf),
		ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return parseHits(res.Body)
}

func SrchCourDeep(query string) ([]map[string]interface{}, error) {
	var buf bytes.Buffer
	srchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"TitleRu": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"TitleEn": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"DescriptionRu": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
					map[string]interface{}{
						"wildcard": map[string]interface{}{
							"DescriptionEn": map[string]interface{}{
								"value":            "*" + query + "*",
								"case_insensitive": true,
							},
						},
					},
				},
			},
		},
	}
	json.NewEncoder(&buf).Encode(srchQuery)
	res, err := ES.Search(ES.Search.WithIndex("courses"), ES.Search.WithBody(&buf), ES.Search.WithTrackTotalHits(true))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return parseHits(res.Body)
}

func parseHits(body io.Reader) ([]map[string]interface{}, error) {
	var r map[string]interface{}
	json.NewDecoder(body).Decode(&r)
	var results []map[string]interface{}
	if hits, ok := r["hits"].(map[string]interface{}); ok {
		if hitArr, ok := hits["hits"].([]interface{}); ok {
			for _, h := range hitArr {
				if hit, ok := h.(map[string]interface{}); ok {
					source := hit["_source"].(map[string]interface{})
					results = append(results, source)
				}
			}
		}
	}
	if results == nil {
		results = make([]map[string]interface{}, 0)
	}
	return results, nil
}

func SearchCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := SrchCour(q)
	if err != nil {
		http.Error(w, "Ошибка поиска", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func SearchCoursesDeep(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	result, err := SrchCourDeep(q)
	if err != nil {
		http.Error(w, "Ошибка поиска", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
