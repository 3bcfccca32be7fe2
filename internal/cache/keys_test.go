package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "course",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "hangeulpath:course:detail:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "course",
			objectType:  "detail",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "hangeulpath:course:detail:123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "course",
			objectType:  "list",
			identifier:  "all",
			paramsKey:   []string{"grammar"},
			expectedKey: "hangeulpath:course:list:all:grammar",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "course",
			objectType:  "list",
			identifier:  "all",
			paramsKey:   []string{"grammar", "Beginner"},
			expectedKey: "hangeulpath:course:list:all:grammar_Beginner",
		},
		{
			name:        "with paramsKey containing special characters",
			serviceName: "quiz",
			objectType:  "session",
			identifier:  "id",
			paramsKey:   []string{"param-1", "param_2"},
			expectedKey: "hangeulpath:quiz:session:id:param-1_param_2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
