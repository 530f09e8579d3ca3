// Package swagger registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o api/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes":{{ marshal .Schemes }},
	"swagger":"2.0",
	"info":{"description":"{{escape .Description}}","title":"{{.Title}}","contact":{},"version":"{{.Version}}"},
	"host":"{{.Host}}",
	"basePath":"{{.BasePath}}",
	"paths":{
		"/api/auth/login":{"post":{"tags":["auth"],"summary":"Login user","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}}},"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/auth/logout":{"post":{"tags":["auth"],"summary":"Logout","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}}}}},
		"/api/auth/me":{"get":{"tags":["auth"],"summary":"Get current user","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/users":{"get":{"tags":["users"],"summary":"List users","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"role","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["users"],"summary":"Create a new user","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/users/{id}":{"get":{"tags":["users"],"summary":"Get user by ID","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/roles":{"get":{"tags":["users"],"summary":"List roles","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/products":{"get":{"tags":["catalog"],"summary":"List products","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"search","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["catalog"],"summary":"Create product","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/warehouses":{"get":{"tags":["catalog"],"summary":"List warehouses","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"search","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["catalog"],"summary":"Create warehouse","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/suppliers":{"get":{"tags":["catalog"],"summary":"List suppliers","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"search","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["catalog"],"summary":"Create supplier","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/invoice-receiving":{"get":{"tags":["invoice-receiving"],"summary":"List invoice receivings","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"qc_status","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["invoice-receiving"],"summary":"Create invoice receiving","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/invoice-receiving/{id}":{"get":{"tags":["invoice-receiving"],"summary":"Get invoice receiving","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/quality-control":{"get":{"tags":["quality-control"],"summary":"List QC inspections","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"status","in":"query"},{"type":"string","name":"priority","in":"query"},{"type":"string","name":"assigned_to","in":"query"},{"type":"string","name":"warehouse_id","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["quality-control"],"summary":"Create QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/quality-control/bulk-assign":{"post":{"tags":["quality-control"],"summary":"Bulk assign QC inspections","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/quality-control/dashboard":{"get":{"tags":["quality-control"],"summary":"Dashboard","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/quality-control/workload":{"get":{"tags":["quality-control"],"summary":"Workload","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/quality-control/statistics":{"get":{"tags":["quality-control"],"summary":"Statistics","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"start_date","in":"query"},{"type":"string","name":"end_date","in":"query"}]}},
		"/api/quality-control/{id}":{"get":{"tags":["quality-control"],"summary":"Get QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]},"put":{"tags":["quality-control"],"summary":"Record line results","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true},{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/quality-control/{id}/actions":{"get":{"tags":["quality-control"],"summary":"Allowed transitions","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"404":{"description":"Not Found","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/quality-control/{id}/start":{"post":{"tags":["quality-control"],"summary":"Start QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/quality-control/{id}/submit":{"post":{"tags":["quality-control"],"summary":"Submit QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/quality-control/{id}/approve":{"post":{"tags":["quality-control"],"summary":"Approve QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/quality-control/{id}/reject":{"post":{"tags":["quality-control"],"summary":"Reject QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true},{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/quality-control/{id}/assign":{"post":{"tags":["quality-control"],"summary":"Assign QC inspection","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true},{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/warehouse-approval":{"get":{"tags":["warehouse-approval"],"summary":"List warehouse approvals","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"status","in":"query"},{"type":"string","name":"priority","in":"query"},{"type":"string","name":"assigned_to","in":"query"},{"type":"string","name":"warehouse_id","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["warehouse-approval"],"summary":"Create warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/warehouse-approval/bulk-assign":{"post":{"tags":["warehouse-approval"],"summary":"Bulk assign warehouse approvals","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/warehouse-approval/dashboard":{"get":{"tags":["warehouse-approval"],"summary":"Dashboard","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/warehouse-approval/workload":{"get":{"tags":["warehouse-approval"],"summary":"Workload","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/warehouse-approval/statistics":{"get":{"tags":["warehouse-approval"],"summary":"Statistics","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"start_date","in":"query"},{"type":"string","name":"end_date","in":"query"}]}},
		"/api/warehouse-approval/{id}":{"get":{"tags":["warehouse-approval"],"summary":"Get warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]},"put":{"tags":["warehouse-approval"],"summary":"Record line results","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true},{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/warehouse-approval/{id}/actions":{"get":{"tags":["warehouse-approval"],"summary":"Allowed transitions","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"404":{"description":"Not Found","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/warehouse-approval/{id}/start":{"post":{"tags":["warehouse-approval"],"summary":"Start warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/warehouse-approval/{id}/submit":{"post":{"tags":["warehouse-approval"],"summary":"Submit warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/warehouse-approval/{id}/approve":{"post":{"tags":["warehouse-approval"],"summary":"Approve warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/warehouse-approval/{id}/reject":{"post":{"tags":["warehouse-approval"],"summary":"Reject warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true},{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/warehouse-approval/{id}/assign":{"post":{"tags":["warehouse-approval"],"summary":"Assign warehouse approval","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true},{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/inventory":{"get":{"tags":["inventory"],"summary":"List inventory","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"product_id","in":"query"},{"type":"string","name":"warehouse_id","in":"query"},{"type":"string","name":"batch_number","in":"query"},{"type":"string","name":"status","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]},"post":{"tags":["inventory"],"summary":"Create inventory record","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"consumes":["application/json"],"parameters":[{"description":"Payload","name":"payload","in":"body","required":true,"schema":{"type":"object"}}]}},
		"/api/inventory/export":{"get":{"tags":["inventory"],"summary":"Export inventory","produces":["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"product_id","in":"query"},{"type":"string","name":"warehouse_id","in":"query"},{"type":"string","name":"batch_number","in":"query"},{"type":"string","name":"status","in":"query"}]}},
		"/api/inventory/{id}":{"get":{"tags":["inventory"],"summary":"Get inventory record","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/inventory/{id}/movements":{"get":{"tags":["inventory"],"summary":"List inventory movements","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/notifications":{"get":{"tags":["notifications"],"summary":"List my notifications","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"unread","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]}},
		"/api/notifications/unread-count":{"get":{"tags":["notifications"],"summary":"Count my unread notifications","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/notifications/read-all":{"post":{"tags":["notifications"],"summary":"Mark all my notifications read","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}]}},
		"/api/notifications/{id}/read":{"post":{"tags":["notifications"],"summary":"Mark a notification read","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","description":"Record ID","name":"id","in":"path","required":true}]}},
		"/api/audit-logs":{"get":{"tags":["audit"],"summary":"Get audit logs","produces":["application/json"],"responses":{"200":{"description":"OK","schema":{"$ref":"#/definitions/response.Response"}},"400":{"description":"Bad Request","schema":{"$ref":"#/definitions/response.Response"}},"401":{"description":"Unauthorized","schema":{"$ref":"#/definitions/response.Response"}},"403":{"description":"Forbidden","schema":{"$ref":"#/definitions/response.Response"}}},"security":[{"BearerAuth":[]}],"parameters":[{"type":"string","name":"entity_type","in":"query"},{"type":"string","name":"entity_id","in":"query"},{"type":"string","name":"action","in":"query"},{"type":"string","name":"page","in":"query"},{"type":"string","name":"limit","in":"query"}]}}
	},
	"definitions":{"response.Meta":{"type":"object","properties":{"limit":{"type":"integer"},"page":{"type":"integer"},"total":{"type":"integer"},"total_pages":{"type":"integer"}}},"response.Response":{"type":"object","properties":{"data":{},"message":{"type":"string"},"meta":{"$ref":"#/definitions/response.Meta"},"status_code":{"type":"integer"},"success":{"type":"boolean"}}}},
	"securityDefinitions":{"BearerAuth":{"type":"apiKey","name":"Authorization","in":"header"}}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Medical Supply Warehouse API",
	Description:      "Receiving, quality control, warehouse approval and inventory for medical supplies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
