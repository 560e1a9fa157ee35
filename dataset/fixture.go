package dataset

// SampleDocument is a small dataset used by tests and the offline mock runner.
var SampleDocument = []byte(`{
  "users": [
    {"user_id": 1, "name": "Amal", "age": 72, "chronic_diseases": ["Diabetes", "Hypertension"], "medications": ["Metformin", "Lisinopril"]},
    {"user_id": 2, "name": "Youssef", "age": 68, "chronic_diseases": ["hypertension"], "medications": ["warfarin"]},
    {"user_id": 3, "name": "Nadia", "age": 81, "chronic_diseases": ["arthritis"], "medications": []}
  ],
  "foods": [
    {"food_name": "White Rice", "category": "grains", "tags": ["staple"], "calories": 130, "total_carbs": 28, "sugars": 0.1, "protein": 2.7, "fiber": 0.4, "sodium": 1},
    {"food_name": "Brown Rice", "category": "grains", "tags": ["whole grain", "high fiber"], "calories": 112, "total_carbs": 23, "sugars": 0.4, "protein": 2.3, "fiber": 1.8, "sodium": 5},
    {"food_name": "Quinoa", "category": "Grains", "tags": ["Whole Grain", "high fiber", "gluten free"], "calories": 120, "total_carbs": 21, "sugars": 0.9, "protein": 4.4, "fiber": 2.8, "sodium": 7},
    {"food_name": "Oatmeal", "category": "grains", "tags": ["whole grain", "high fiber"], "calories": 68, "total_carbs": 12, "sugars": 0.5, "protein": 2.4, "fiber": 1.7, "sodium": 49},
    {"food_name": "Grilled Fish", "category": "protein", "tags": ["lean", "low carb"], "calories": 140, "total_carbs": 0, "sugars": 0, "protein": 26, "fiber": 0, "sodium": 90},
    {"food_name": "Chicken Breast", "category": "protein", "tags": ["lean"], "calories": 165, "total_carbs": 0, "sugars": 0, "protein": 31, "fiber": 0, "sodium": 74},
    {"food_name": "Orange Juice", "category": "beverages", "tags": ["fruit"], "calories": 45, "total_carbs": 10.4, "sugars": 8.4, "protein": 0.7, "fiber": 0.2, "sodium": 1},
    {"food_name": "Soda", "category": "beverages", "tags": ["sugary"], "calories": 140, "total_carbs": 39, "sugars": 39, "protein": 0, "fiber": 0, "sodium": 45},
    {"food_name": "Banana", "category": "fruit", "tags": ["fruit", "potassium"], "calories": 89, "total_carbs": 23, "sugars": 12, "protein": 1.1, "fiber": 2.6, "sodium": 1},
    {"food_name": "Grapefruit", "category": "fruit", "tags": ["fruit", "citrus"], "calories": 42, "total_carbs": 11, "sugars": 7, "protein": 0.8, "fiber": 1.6, "sodium": 0},
    {"food_name": "Spinach", "category": "vegetables", "tags": ["leafy green", "high fiber"], "calories": 23, "total_carbs": 3.6, "sugars": 0.4, "protein": 2.9, "fiber": 2.2, "sodium": 79},
    {"food_name": "Lentil Soup", "category": "soups", "tags": ["high fiber"], "calories": 180, "total_carbs": 30, "sugars": 3, "protein": 12, "fiber": 8, "sodium": 380},
    {"food_name": "Instant Noodles", "category": "fast-food", "tags": ["processed"], "calories": 450, "total_carbs": 60, "sugars": 3, "protein": 9, "fiber": 2, "sodium": 1800},
    {"food_name": "Whole Wheat Bread", "category": "bread", "tags": ["whole grain"], "calories": 247, "total_carbs": 41, "sugars": 6, "protein": 13, "fiber": 7, "sodium": 450},
    {"food_name": "Mystery Bar", "category": "snacks", "calories": "n/a", "sugars": null}
  ],
  "drugs": [
    {"drug_name": "Warfarin", "avoid_foods": ["Spinach", "Kale"], "notes": "Vitamin K rich foods reduce the anticoagulant effect."},
    {"drug_name": "Lisinopril", "avoid_foods": ["Banana", "Salt Substitute"], "notes": "Potassium-rich foods can raise potassium levels."},
    {"drug_name": "Metformin", "avoid_foods": ["Alcohol"], "notes": "Alcohol raises the risk of lactic acidosis."},
    {"drug_name": "Simvastatin", "avoid_foods": ["Grapefruit"], "notes": "Grapefruit raises statin blood levels."}
  ],
  "meal_plans": [
    {"condition": "Hypertension", "breakfast": "Oatmeal with berries", "lunch": "Grilled fish with spinach", "dinner": "Lentil soup", "notes": "Keep sodium under 1500 mg per day."}
  ]
}`)
